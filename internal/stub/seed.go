package stub

import (
	"fmt"

	"storefront/internal/models"
)

// seed loads a small demo catalog. Idempotent: skips when products exist.
func (s *Server) seed() error {
	var count int64
	if err := s.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name: "Classic White T-Shirt", Description: "Premium cotton classic white t-shirt",
			Price: 599, CategoryID: 1, Brand: "Aster", Colour: "White",
			ImageURI: "https://images.example.com/tshirt.jpg",
			Sizes: []models.ProductSize{
				{Size: "S", Stock: 12}, {Size: "M", Stock: 8}, {Size: "L", Stock: 3},
			},
		},
		{
			Name: "Denim Jacket", Description: "Vintage style denim jacket",
			Price: 1299, CategoryID: 1, Brand: "Northway", Colour: "Blue",
			ImageURI: "https://images.example.com/denim-jacket.jpg",
			Sizes: []models.ProductSize{
				{Size: "M", Stock: 5}, {Size: "L", Stock: 2},
			},
		},
		{
			Name: "Leather Boots", Description: "Premium leather ankle boots",
			Price: 2499, CategoryID: 1, Brand: "Northway", Colour: "Brown",
			ImageURI: "https://images.example.com/boots.jpg",
			Sizes: []models.ProductSize{
				{Size: "8", Stock: 6}, {Size: "9", Stock: 4}, {Size: "10", Stock: 1},
			},
		},
		{
			Name: "Running Sneakers", Description: "Comfortable running sneakers",
			Price: 1299, CategoryID: 1, Brand: "Aster", Colour: "Black",
			ImageURI: "https://images.example.com/sneakers.jpg",
			Sizes: []models.ProductSize{
				{Size: "8", Stock: 10}, {Size: "9", Stock: 10},
			},
		},
		{
			Name: "Smartphone", Description: "Latest smartphone with advanced features",
			Price: 15999, CategoryID: 2, Brand: "Volta", Colour: "Black",
			ImageURI: "https://images.example.com/smartphone.jpg",
			Sizes:    []models.ProductSize{{Size: "128GB", Stock: 20}},
		},
		{
			Name: "Laptop", Description: "High-performance laptop for work and gaming",
			Price: 45999, CategoryID: 2, Brand: "Volta", Colour: "Silver",
			ImageURI: "https://images.example.com/laptop.jpg",
			Sizes:    []models.ProductSize{{Size: "16GB", Stock: 7}},
		},
	}

	for i := range products {
		if err := s.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].Name, err)
		}
	}
	return nil
}
