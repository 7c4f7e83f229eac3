package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/models"
)

// LoginRequest is the credentials payload for POST /user/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for POST /user/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// AuthResult carries the authenticated user and bearer token returned by the
// login and register endpoints.
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login authenticates and returns the user plus a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var result AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/user/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns the user plus a bearer token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var result AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/user/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/user/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate holds the editable profile fields; zero values are omitted so
// a partial update leaves the rest untouched.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// UpdateProfile applies a partial update and returns the refreshed user and
// token as issued by the backend.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*AuthResult, error) {
	if err := checkRequest(update); err != nil {
		return nil, err
	}
	var result AuthResult
	if _, err := c.do(ctx, http.MethodPut, "/user/profile", update, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangePassword swaps the account password given the current one.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	payload := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	if _, err := c.do(ctx, http.MethodPut, "/user/change-password", payload, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
