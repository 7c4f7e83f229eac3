package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"storefront/internal/api"
	"storefront/internal/models"
)

// CartAPI is the slice of the backend client the cart service needs.
type CartAPI interface {
	AddToCart(ctx context.Context, req api.AddToCartRequest) (*models.CartItem, error)
	GetUserCart(ctx context.Context) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, cartItemID int64, req api.UpdateCartRequest) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, cartItemID int64) error
	ClearCart(ctx context.Context) error
}

// ErrConfirmRemoval is returned when a decrement would push a quantity below
// 1. No request goes out; the caller runs the removal-confirmation flow and
// then calls Remove explicitly.
var ErrConfirmRemoval = errors.New("quantity would drop below 1, confirm removal instead")

// ErrUpdatePending is returned when an item already has a mutation in flight.
// Queuing a second one would make the final quantity depend on response
// arrival order, so the later tap loses.
var ErrUpdatePending = errors.New("an update for this item is already in flight")

// Pricing carries the client-side display totals for the current snapshot.
// Total is a mirror of the server's arithmetic, not a reconciliation of it:
// if the backend's fee constant drifts, so does this number.
type Pricing struct {
	Subtotal    float64
	PlatformFee float64
	Total       float64
	// StrikeTotal is the inflated pre-"discount" price rendered struck
	// through next to the payable total.
	StrikeTotal float64
	ItemCount   int
}

// Cart holds the locally displayed cart: the last server-confirmed snapshot
// plus one optimistic overlay per item with a mutation in flight. On success
// the snapshot absorbs the server's answer; on any failure the overlay is
// discarded and the last-confirmed value shows again.
type Cart struct {
	mu       sync.Mutex
	api      CartAPI
	snapshot models.Cart
	pending  map[int64]int // cart item id -> optimistic quantity

	platformFee  float64
	strikeMarkup float64
}

// NewCart creates a cart service over the given API slice.
func NewCart(cartAPI CartAPI, platformFee, strikeMarkup float64) *Cart {
	return &Cart{
		api:          cartAPI,
		pending:      make(map[int64]int),
		platformFee:  platformFee,
		strikeMarkup: strikeMarkup,
	}
}

// Refresh replaces the snapshot with a fresh server fetch. In-flight overlays
// survive a refresh; their outcome still rules their item.
func (c *Cart) Refresh(ctx context.Context) error {
	cart, err := c.api.GetUserCart(ctx)
	if err != nil {
		return fmt.Errorf("refresh cart: %w", err)
	}

	c.mu.Lock()
	c.snapshot = *cart
	c.mu.Unlock()
	return nil
}

// Items returns the displayed line items: the last-confirmed snapshot with
// any optimistic overlays applied on top.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.CartItem, len(c.snapshot.Items))
	copy(items, c.snapshot.Items)
	for i := range items {
		if qty, ok := c.pending[items[i].ID]; ok {
			items[i].Quantity = qty
		}
	}
	return items
}

// ServerTotal is the total the backend computed on the last fetch; this is
// the amount actually charged.
func (c *Cart) ServerTotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.Total
}

// Add adds a product to the cart and refreshes the snapshot from the server.
// There is no client-side dedup: tapping add twice adds twice.
func (c *Cart) Add(ctx context.Context, req api.AddToCartRequest) error {
	if req.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", req.Quantity)
	}
	if _, err := c.api.AddToCart(ctx, req); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// ChangeQuantity applies a +1/-1 style delta to a line item, optimistically.
// The displayed quantity moves immediately; the server response either
// confirms it or rolls it back. A soft stock rejection surfaces as
// api.ErrInsufficientStock with the displayed quantity restored.
func (c *Cart) ChangeQuantity(ctx context.Context, cartItemID int64, delta int) error {
	c.mu.Lock()
	if _, inFlight := c.pending[cartItemID]; inFlight {
		c.mu.Unlock()
		return ErrUpdatePending
	}

	current, ok := c.confirmedQuantity(cartItemID)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("cart item %d not in cart", cartItemID)
	}

	newQuantity := current + delta
	if newQuantity < 1 {
		c.mu.Unlock()
		return ErrConfirmRemoval
	}

	// Optimistic: show the new quantity while the request is out.
	c.pending[cartItemID] = newQuantity
	c.mu.Unlock()

	item, err := c.api.UpdateCartItem(ctx, cartItemID, api.UpdateCartRequest{Quantity: newQuantity})

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, cartItemID)

	if err != nil {
		// Rollback: the last-confirmed snapshot shows again.
		if errors.Is(err, api.ErrInsufficientStock) {
			return api.ErrInsufficientStock
		}
		return fmt.Errorf("update quantity for item %d: %w", cartItemID, err)
	}

	c.applyConfirmed(item)
	return nil
}

// Remove deletes a line item after the caller's confirmation step, then
// refreshes the snapshot.
func (c *Cart) Remove(ctx context.Context, cartItemID int64) error {
	if err := c.api.RemoveFromCart(ctx, cartItemID); err != nil {
		return fmt.Errorf("remove cart item %d: %w", cartItemID, err)
	}
	return c.Refresh(ctx)
}

// Clear empties the cart locally and remotely.
func (c *Cart) Clear(ctx context.Context) error {
	if err := c.api.ClearCart(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	c.mu.Lock()
	c.snapshot = models.Cart{}
	c.pending = make(map[int64]int)
	c.mu.Unlock()
	return nil
}

// Totals computes the display pricing over the current (overlay-applied)
// items: sum of quantity times unit price plus the flat platform fee.
func (c *Cart) Totals() Pricing {
	items := c.Items()

	var subtotal float64
	var count int
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.Product.Price
		count += item.Quantity
	}

	total := subtotal + c.platformFee
	return Pricing{
		Subtotal:    subtotal,
		PlatformFee: c.platformFee,
		Total:       total,
		StrikeTotal: total + c.strikeMarkup,
		ItemCount:   count,
	}
}

// Drift reports how far the client-side total has diverged from the
// server-computed one (client minus server, fee included on both sides).
// Display-only; nothing reconciles on it, but logging it makes a fee-constant
// mismatch visible instead of silent.
func (c *Cart) Drift() float64 {
	c.mu.Lock()
	serverTotal := c.snapshot.Total + c.platformFee
	c.mu.Unlock()

	drift := c.Totals().Total - serverTotal
	if drift != 0 {
		log.Printf("cart total drift: client %.2f vs server %.2f", c.Totals().Total, serverTotal)
	}
	return drift
}

// confirmedQuantity reads an item's displayed quantity from the snapshot.
// Caller holds the lock.
func (c *Cart) confirmedQuantity(cartItemID int64) (int, bool) {
	for _, item := range c.snapshot.Items {
		if item.ID == cartItemID {
			return item.Quantity, true
		}
	}
	return 0, false
}

// applyConfirmed folds a server-confirmed item back into the snapshot.
// Caller holds the lock.
func (c *Cart) applyConfirmed(item *models.CartItem) {
	if item == nil {
		return
	}
	for i := range c.snapshot.Items {
		if c.snapshot.Items[i].ID == item.ID {
			c.snapshot.Items[i].Quantity = item.Quantity
			return
		}
	}
}
