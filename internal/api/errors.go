package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StockInsufficientMessage is the exact message the backend embeds in a
// success envelope when a cart mutation exceeds the stock for a size. The
// string match is the contract; it must not be altered while this client
// talks to the same backend.
const StockInsufficientMessage = "Insufficient stock for this size"

// ErrInsufficientStock is surfaced when a cart mutation came back as a soft
// rejection: HTTP success, business rule violated, displayed quantity must
// stay put.
var ErrInsufficientStock = errors.New("insufficient stock for this size")

// APIError is a non-2xx application error. The server's message field is
// what gets shown to the user, which blurs "no connectivity" and "server
// rejected request" into the same alert exactly as the app always has.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// newAPIError extracts the message field from an error body, falling back to
// a bare status error when the body is not the usual JSON shape.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &APIError{StatusCode: status, Message: payload.Message}
}
