package models

// WishlistItem mirrors the shape and lifecycle of a cart line item; wishlist
// quantities are a wish, not a reservation, so there is no stock checking on
// this path.
type WishlistItem struct {
	ID            int64   `json:"id" gorm:"primaryKey"`
	UserID        int64   `json:"-"`
	ProductID     int64   `json:"productId" validate:"required"`
	ProductSizeID *int64  `json:"productSizeId,omitempty"`
	Quantity      int     `json:"quantity" validate:"gte=1"`
	Size          string  `json:"size,omitempty"`
	Product       Product `json:"product" gorm:"foreignKey:ProductID"`
}

// Wishlist is the payload of a wishlist fetch.
type Wishlist struct {
	Items []WishlistItem `json:"items"`
}
