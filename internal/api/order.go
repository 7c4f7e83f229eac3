package api

import (
	"context"
	"net/http"

	"storefront/internal/models"
)

// PlaceOrderRequest is the payload submitted at the end of checkout.
type PlaceOrderRequest struct {
	UserID      int64  `json:"userId" validate:"required"`
	AddressID   int64  `json:"addressId" validate:"required"`
	PaymentMode string `json:"paymentMode" validate:"required"`
}

// PlaceOrder submits an order. One shot, no retry: a failure here surfaces to
// the user but the checkout flow winds down either way.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var order models.Order
	if _, err := c.do(ctx, http.MethodPost, "/order", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetMyOrders fetches the user's order history. The response is a bespoke
// {orders: [...]} object rather than the envelope.
func (c *Client) GetMyOrders(ctx context.Context) ([]models.Order, error) {
	var payload struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.doRaw(ctx, http.MethodGet, "/orders/my-orders", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Orders, nil
}
