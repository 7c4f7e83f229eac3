package services

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/models"
)

// OrderAPI is the slice of the backend client the order history needs.
type OrderAPI interface {
	GetMyOrders(ctx context.Context) ([]models.Order, error)
}

// Fee breakdown shown on the order details screen. These are display
// constants mirrored from the backend's receipt arithmetic.
const (
	OrderHandlingFee   = 2.00
	OrderPlatformFee   = 1.00
	OrderProcessingFee = 3.00
)

// OrderService fetches and presents the user's order history.
type OrderService struct {
	api OrderAPI
}

// NewOrders creates an order history service.
func NewOrders(orderAPI OrderAPI) *OrderService {
	return &OrderService{api: orderAPI}
}

// List fetches the user's orders.
func (o *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := o.api.GetMyOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return orders, nil
}

// Search filters orders client-side by product name, case-insensitively.
func (o *OrderService) Search(ctx context.Context, text string) ([]models.Order, error) {
	orders, err := o.List(ctx)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return orders, nil
	}

	needle := strings.ToLower(text)
	var matched []models.Order
	for _, order := range orders {
		for _, item := range order.Items {
			if strings.Contains(strings.ToLower(item.Product.Name), needle) {
				matched = append(matched, order)
				break
			}
		}
	}
	return matched, nil
}

// Receipt is the order-details fee breakdown.
type Receipt struct {
	ItemsTotal    float64
	HandlingFee   float64
	PlatformFee   float64
	ProcessingFee float64
	FinalPrice    float64
}

// BuildReceipt computes the detail-screen totals for one order.
func BuildReceipt(order models.Order) Receipt {
	var itemsTotal float64
	for _, item := range order.Items {
		itemsTotal += float64(item.Quantity) * item.Product.Price
	}
	return Receipt{
		ItemsTotal:    itemsTotal,
		HandlingFee:   OrderHandlingFee,
		PlatformFee:   OrderPlatformFee,
		ProcessingFee: OrderProcessingFee,
		FinalPrice:    itemsTotal + OrderHandlingFee + OrderPlatformFee + OrderProcessingFee,
	}
}

// StatusHeading renders an order status for display.
func StatusHeading(status string) string {
	switch strings.ToLower(status) {
	case models.OrderStatusPlaced:
		return "Order Placed"
	case models.OrderStatusShipping:
		return "Shipped"
	case models.OrderStatusOutForDelivery:
		return "Out for Delivery"
	case models.OrderStatusDelivered:
		return "Delivered"
	case models.OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Processing"
	}
}

// ReviewPrompt returns the review-eligibility line for an order's status:
// rating opens up only once delivered.
func ReviewPrompt(status string) string {
	switch strings.ToLower(status) {
	case models.OrderStatusCancelled:
		return ""
	case models.OrderStatusDelivered:
		return "Rate this product!"
	case models.OrderStatusOutForDelivery:
		return "You'll be able to rate this soon."
	default:
		return "You'll be able to rate this once it's delivered."
	}
}

// CanReview reports whether the order's products are reviewable.
func CanReview(status string) bool {
	return strings.ToLower(status) == models.OrderStatusDelivered
}
