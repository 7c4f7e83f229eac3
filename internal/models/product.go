package models

// Product represents a catalog product as served by the backend.
type Product struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" validate:"required,min=3,max=100"`
	Description string        `json:"description" validate:"omitempty,max=500"`
	Price       float64       `json:"price" validate:"required,gt=0"`
	ImageURI    string        `json:"image_uri"`
	CategoryID  int64         `json:"category_id"`
	Brand       string        `json:"brand,omitempty"`
	Colour      string        `json:"colour,omitempty"`
	Sizes       []ProductSize `json:"productSizes,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductSize is a per-size stock entry for a product. Stock is authoritative
// server-side; the client only ever learns about it through the soft rejection
// a cart mutation gets back when a size runs out.
type ProductSize struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	ProductID int64  `json:"-"`
	Size      string `json:"size" validate:"required,max=10"`
	Stock     int    `json:"-" validate:"gte=0"`
}
