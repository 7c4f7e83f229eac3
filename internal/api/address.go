package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/models"
)

// GetAddresses fetches the user's address book. The path parameter is the
// user id and the response is a bespoke {addresses: [...]} object, not the
// usual envelope; both quirks are part of the existing backend contract.
func (c *Client) GetAddresses(ctx context.Context, userID int64) ([]models.Address, error) {
	var payload struct {
		Addresses []models.Address `json:"addresses"`
	}
	if err := c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/address/%d", userID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Addresses, nil
}

// AddAddress creates a new address.
func (c *Client) AddAddress(ctx context.Context, address models.Address) (*models.Address, error) {
	if err := checkRequest(address); err != nil {
		return nil, err
	}
	var created models.Address
	if _, err := c.do(ctx, http.MethodPost, "/address", address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAddress replaces an address. The backend answers with a bare status,
// no body worth decoding.
func (c *Client) UpdateAddress(ctx context.Context, addressID int64, address models.Address) error {
	address.ID = addressID
	if err := checkRequest(address); err != nil {
		return err
	}
	return c.doRaw(ctx, http.MethodPut, fmt.Sprintf("/address/%d", addressID), address, nil)
}
