package models

import "time"

// User represents a storefront account. The backend owns the authoritative
// record; the client holds a short-lived copy inside the session.
type User struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Name      string     `json:"name,omitempty" validate:"omitempty,max=100"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone     string     `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address   string     `json:"address,omitempty" validate:"omitempty,max=255"`
	Password  string     `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
