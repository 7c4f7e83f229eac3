package models

import "time"

// Order lifecycle statuses as emitted by the backend. The client never
// transitions an order; it only renders whatever status comes back.
const (
	OrderStatusPlaced         = "order_placed"
	OrderStatusShipping       = "shipping"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// OrderItem is a product/quantity pair frozen at order time.
type OrderItem struct {
	ID        int64   `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-"`
	ProductID int64   `json:"-"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity"`
}

// Order is a placed order as returned by the my-orders endpoint. Created by
// order placement, mutated only by server-side status transitions.
type Order struct {
	ID           string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       int64       `json:"-"`
	AddressID    int64       `json:"-"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	DeliveryDate time.Time   `json:"deliveryDate"`
	PaymentMode  string      `json:"paymentMode,omitempty"`
	User         User        `json:"user" gorm:"foreignKey:UserID"`
	Address      Address     `json:"Address" gorm:"foreignKey:AddressID"`
	CreatedAt    time.Time   `json:"createdAt"`
}
