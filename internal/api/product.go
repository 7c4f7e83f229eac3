package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/models"
)

// detailTimeout bounds the product-detail fetch. It is the only call in the
// app that carries a deadline today; the rest run unbounded against the same
// backend.
const detailTimeout = 60 * time.Second

// GetRandomProducts fetches the home-screen product suggestions.
func (c *Client) GetRandomProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, "/product/random-products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product with its sizes.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	var product models.Product
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/%d", productID), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByCategory lists a category's products.
func (c *Client) GetProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/category/%d", categoryID), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts does a free-text catalog search.
func (c *Client) SearchProducts(ctx context.Context, queryText string) ([]models.Product, error) {
	var products []models.Product
	path := "/product/search" + query(map[string]string{"query": queryText})
	if _, err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductFilter narrows a catalog listing. Zero values are left out of the
// query string.
type ProductFilter struct {
	Brand    string
	Colour   string
	Size     string
	MinPrice float64
	MaxPrice float64
}

// FilterProducts lists products matching the filter.
func (c *Client) FilterProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	params := map[string]string{
		"brand":  filter.Brand,
		"colour": filter.Colour,
		"size":   filter.Size,
	}
	if filter.MinPrice > 0 {
		params["minPrice"] = strconv.FormatFloat(filter.MinPrice, 'f', -1, 64)
	}
	if filter.MaxPrice > 0 {
		params["maxPrice"] = strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64)
	}

	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, "/product/filter"+query(params), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetBrands lists the distinct brands in the catalog.
func (c *Client) GetBrands(ctx context.Context) ([]string, error) {
	return c.getStrings(ctx, "/product/brands")
}

// GetColours lists the distinct colours in the catalog.
func (c *Client) GetColours(ctx context.Context) ([]string, error) {
	return c.getStrings(ctx, "/product/colours")
}

// GetSizes lists the distinct sizes in the catalog.
func (c *Client) GetSizes(ctx context.Context) ([]string, error) {
	return c.getStrings(ctx, "/product/sizes")
}

func (c *Client) getStrings(ctx context.Context, path string) ([]string, error) {
	var values []string
	if _, err := c.do(ctx, http.MethodGet, path, nil, &values); err != nil {
		return nil, err
	}
	return values, nil
}
