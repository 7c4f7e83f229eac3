package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront/internal/api"
	"storefront/internal/models"
)

// CheckoutAPI is the slice of the backend client the checkout flow needs.
type CheckoutAPI interface {
	GetAddresses(ctx context.Context, userID int64) ([]models.Address, error)
	PlaceOrder(ctx context.Context, req api.PlaceOrderRequest) (*models.Order, error)
}

// Checkout flow steps. The flow is linear and unresumable: nothing is
// persisted between steps, and abandoning it loses every selection.
type CheckoutStep int

const (
	StepAddress CheckoutStep = iota
	StepPayment
	StepDone
)

// PaymentModeCOD is the only payment mode wired to a real submission; the
// cards/wallets/UPI affordances are static.
const PaymentModeCOD = "COD"

var (
	// ErrNoAddressSelected is returned when advancing past the address step
	// without a selection.
	ErrNoAddressSelected = errors.New("no delivery address selected")
	// ErrPaymentModeUnavailable is returned for the payment affordances that
	// are displayed but not wired to a submission.
	ErrPaymentModeUnavailable = errors.New("payment mode not available")
	// ErrWrongStep is returned when an operation is called out of order.
	ErrWrongStep = errors.New("operation not valid for current checkout step")
)

// Checkout drives the address -> payment -> submit sequence. One flow per
// checkout attempt; create a fresh one each time the user starts over.
type Checkout struct {
	api     CheckoutAPI
	session *Session

	step      CheckoutStep
	addresses []models.Address
	selected  int64
	submitted bool
}

// NewCheckout creates a flow at the address step.
func NewCheckout(checkoutAPI CheckoutAPI, session *Session) *Checkout {
	return &Checkout{api: checkoutAPI, session: session, step: StepAddress}
}

// Step reports where the flow currently is.
func (f *Checkout) Step() CheckoutStep { return f.step }

// LoadAddresses fetches the user's address book and pre-selects the default
// address: exactly the one flagged isDefault, or none when no such address
// exists.
func (f *Checkout) LoadAddresses(ctx context.Context) error {
	if f.step != StepAddress {
		return ErrWrongStep
	}

	addresses, err := f.api.GetAddresses(ctx, f.session.UserID())
	if err != nil {
		return fmt.Errorf("fetch addresses: %w", err)
	}

	f.addresses = addresses
	f.selected = 0
	for _, addr := range addresses {
		if addr.IsDefault {
			f.selected = addr.ID
			break
		}
	}
	return nil
}

// Addresses returns the loaded address book.
func (f *Checkout) Addresses() []models.Address { return f.addresses }

// SelectedAddress returns the currently selected address id, 0 when none.
func (f *Checkout) SelectedAddress() int64 { return f.selected }

// SelectAddress overrides the pre-selected address.
func (f *Checkout) SelectAddress(addressID int64) error {
	if f.step != StepAddress {
		return ErrWrongStep
	}
	for _, addr := range f.addresses {
		if addr.ID == addressID {
			f.selected = addressID
			return nil
		}
	}
	return fmt.Errorf("address %d not in the loaded address book", addressID)
}

// ProceedToPayment advances to the payment step. The selected address id
// travels inside the flow only; there is no saved draft to come back to.
func (f *Checkout) ProceedToPayment() error {
	if f.step != StepAddress {
		return ErrWrongStep
	}
	if f.selected == 0 {
		return ErrNoAddressSelected
	}
	f.step = StepPayment
	return nil
}

// PaymentModes lists the affordances shown on the payment page. Only COD
// submits.
func (f *Checkout) PaymentModes() []string {
	return []string{"Cards", "Wallets", "UPI", "Net Banking", PaymentModeCOD}
}

// Submit places the order. Regardless of the outcome the flow finishes: a
// failure is returned for the caller's alert, but the step is already Done
// and the selections are gone. That mirrors the shipped behavior; whether it
// is intentional is an open product question, so it is preserved rather than
// fixed here.
func (f *Checkout) Submit(ctx context.Context, paymentMode string) (err error) {
	if f.step != StepPayment {
		return ErrWrongStep
	}
	if paymentMode != PaymentModeCOD {
		return ErrPaymentModeUnavailable
	}

	defer func() {
		f.step = StepDone
		f.submitted = true
		f.selected = 0
		f.addresses = nil
	}()

	_, err = f.api.PlaceOrder(ctx, api.PlaceOrderRequest{
		UserID:      f.session.UserID(),
		AddressID:   f.selected,
		PaymentMode: paymentMode,
	})
	if err != nil {
		log.Printf("order submission failed: %v", err)
		return fmt.Errorf("place order: %w", err)
	}
	return nil
}

// Abandon throws the flow away mid-way. All selections are lost, same as
// backing out of the screens.
func (f *Checkout) Abandon() {
	f.step = StepDone
	f.selected = 0
	f.addresses = nil
}
