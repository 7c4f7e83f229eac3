package models

import "time"

// Review is a product review. One review per (user, product) pair; once
// submitted the client treats it as immutable.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"productId" validate:"required"`
	UserID    int64     `json:"userId" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=500"`
	CreatedAt time.Time `json:"createdAt"`
}
