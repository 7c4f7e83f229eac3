package services

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/api"
	"storefront/internal/models"
)

// WishlistAPI is the slice of the backend client the wishlist service needs.
type WishlistAPI interface {
	AddToWishlist(ctx context.Context, req api.AddToWishlistRequest) (*models.WishlistItem, error)
	GetUserWishlist(ctx context.Context) (*models.Wishlist, error)
	UpdateWishlistItem(ctx context.Context, wishlistItemID int64, quantity int) (*models.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, wishlistItemID int64) error
	ClearWishlist(ctx context.Context) error
}

// WishlistService caches the last wishlist fetch. No optimistic overlays
// here: wishlist mutations wait for the server and then refresh, since
// nothing races on this screen.
type WishlistService struct {
	mu       sync.Mutex
	api      WishlistAPI
	snapshot models.Wishlist
}

// NewWishlist creates a wishlist service.
func NewWishlist(wishlistAPI WishlistAPI) *WishlistService {
	return &WishlistService{api: wishlistAPI}
}

// Refresh replaces the snapshot from the server.
func (w *WishlistService) Refresh(ctx context.Context) error {
	wishlist, err := w.api.GetUserWishlist(ctx)
	if err != nil {
		return fmt.Errorf("refresh wishlist: %w", err)
	}
	w.mu.Lock()
	w.snapshot = *wishlist
	w.mu.Unlock()
	return nil
}

// Items returns the last fetched wishlist items.
func (w *WishlistService) Items() []models.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := make([]models.WishlistItem, len(w.snapshot.Items))
	copy(items, w.snapshot.Items)
	return items
}

// Add adds an item and refreshes.
func (w *WishlistService) Add(ctx context.Context, req api.AddToWishlistRequest) error {
	if req.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", req.Quantity)
	}
	if _, err := w.api.AddToWishlist(ctx, req); err != nil {
		return err
	}
	return w.Refresh(ctx)
}

// SetQuantity sets an item's quantity and refreshes. Dropping below 1 is a
// removal, same rule as the cart.
func (w *WishlistService) SetQuantity(ctx context.Context, wishlistItemID int64, quantity int) error {
	if quantity < 1 {
		return ErrConfirmRemoval
	}
	if _, err := w.api.UpdateWishlistItem(ctx, wishlistItemID, quantity); err != nil {
		return fmt.Errorf("update wishlist item %d: %w", wishlistItemID, err)
	}
	return w.Refresh(ctx)
}

// Remove deletes an item and refreshes.
func (w *WishlistService) Remove(ctx context.Context, wishlistItemID int64) error {
	if err := w.api.RemoveFromWishlist(ctx, wishlistItemID); err != nil {
		return fmt.Errorf("remove wishlist item %d: %w", wishlistItemID, err)
	}
	return w.Refresh(ctx)
}

// Clear empties the wishlist.
func (w *WishlistService) Clear(ctx context.Context) error {
	if err := w.api.ClearWishlist(ctx); err != nil {
		return fmt.Errorf("clear wishlist: %w", err)
	}
	w.mu.Lock()
	w.snapshot = models.Wishlist{}
	w.mu.Unlock()
	return nil
}
