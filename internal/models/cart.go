package models

// CartItem is one line of the user's cart. Quantity is at least 1; dropping
// below 1 means removal, which goes through its own confirmation flow instead
// of ever sending a non-positive quantity to the backend.
type CartItem struct {
	ID            int64        `json:"id" gorm:"primaryKey"`
	UserID        int64        `json:"-"`
	ProductID     int64        `json:"productId" validate:"required"`
	ProductSizeID *int64       `json:"productSizeId,omitempty"`
	Quantity      int          `json:"quantity" validate:"gte=1"`
	Product       Product      `json:"product" gorm:"foreignKey:ProductID"`
	ProductSize   *ProductSize `json:"productSize,omitempty" gorm:"foreignKey:ProductSizeID"`
}

// Cart is the payload of a cart fetch: the line items plus the totals the
// server computed. Total is the amount actually charged; the client-side sum
// exists for display only.
type Cart struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}
