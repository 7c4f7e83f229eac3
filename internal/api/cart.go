package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/models"
)

// AddToCartRequest is the payload for POST /cart/add.
type AddToCartRequest struct {
	ProductID     int64  `json:"productId" validate:"required"`
	ProductSizeID *int64 `json:"productSizeId,omitempty"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
}

// UpdateCartRequest is the payload for PUT /cart/:id.
type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// AddToCart adds an item. A repeated call increments the server-side quantity
// again; callers that care about double-taps have to debounce themselves.
// Returns ErrInsufficientStock when the backend soft-rejects over stock.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (*models.CartItem, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var item models.CartItem
	msg, err := c.do(ctx, http.MethodPost, "/cart/add", req, &item)
	if err != nil {
		return nil, err
	}
	if msg == StockInsufficientMessage {
		return nil, ErrInsufficientStock
	}
	return &item, nil
}

// GetUserCart fetches the authoritative cart snapshot, including the
// server-computed total and item count.
func (c *Client) GetUserCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if _, err := c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem sets the quantity of a cart line item. Returns
// ErrInsufficientStock when the backend answers with its stock soft
// rejection, in which case the server-side quantity is unchanged.
func (c *Client) UpdateCartItem(ctx context.Context, cartItemID int64, req UpdateCartRequest) (*models.CartItem, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var item models.CartItem
	msg, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", cartItemID), req, &item)
	if err != nil {
		return nil, err
	}
	if msg == StockInsufficientMessage {
		return nil, ErrInsufficientStock
	}
	return &item, nil
}

// RemoveFromCart deletes a cart line item.
func (c *Client) RemoveFromCart(ctx context.Context, cartItemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", cartItemID), nil, nil)
	return err
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil)
	return err
}
