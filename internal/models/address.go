package models

// Address types as rendered by the address book.
const (
	AddressTypeHome   = "Home"
	AddressTypeOffice = "Office"
	AddressTypeOther  = "Other"
)

// Address is a delivery address. At most one address per user carries
// IsDefault; the backend enforces that, the client only relies on it when
// pre-selecting during checkout.
type Address struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	UserID       int64  `json:"-"`
	Nickname     string `json:"nickname" validate:"required,max=50"`
	Line1        string `json:"line1" validate:"required,max=100"`
	Line2        string `json:"line2,omitempty" validate:"omitempty,max=100"`
	City         string `json:"city" validate:"required,max=50"`
	State        string `json:"state" validate:"required,max=50"`
	Zip          string `json:"zip" validate:"required,max=12"`
	Country      string `json:"country" validate:"required,max=50"`
	Type         string `json:"type" validate:"required,oneof=Home Office Other"`
	IsDefault    bool   `json:"isDefault"`
	ReceiverName string `json:"receiverName" validate:"required,max=100"`
}
