package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/models"
)

// AddToWishlistRequest is the payload for POST /wishlist/add.
type AddToWishlistRequest struct {
	ProductID     int64  `json:"productId" validate:"required"`
	ProductSizeID *int64 `json:"productSizeId,omitempty"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
	Size          string `json:"size,omitempty"`
}

// AddToWishlist adds an item to the wishlist.
func (c *Client) AddToWishlist(ctx context.Context, req AddToWishlistRequest) (*models.WishlistItem, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var item models.WishlistItem
	if _, err := c.do(ctx, http.MethodPost, "/wishlist/add", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetUserWishlist fetches the wishlist snapshot.
func (c *Client) GetUserWishlist(ctx context.Context) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if _, err := c.do(ctx, http.MethodGet, "/wishlist", nil, &wishlist); err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// UpdateWishlistItem sets a wishlist item's quantity. No stock checking on
// this path; the wishlist is a wish, not a reservation.
func (c *Client) UpdateWishlistItem(ctx context.Context, wishlistItemID int64, quantity int) (*models.WishlistItem, error) {
	payload := map[string]int{"quantity": quantity}
	var item models.WishlistItem
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/wishlist/%d", wishlistItemID), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromWishlist deletes a wishlist item.
func (c *Client) RemoveFromWishlist(ctx context.Context, wishlistItemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/wishlist/%d", wishlistItemID), nil, nil)
	return err
}

// ClearWishlist empties the wishlist.
func (c *Client) ClearWishlist(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/wishlist/clear", nil, nil)
	return err
}
