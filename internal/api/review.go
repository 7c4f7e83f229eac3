package api

import (
	"context"
	"net/http"

	"storefront/internal/models"
)

// AddReviewRequest is the payload for POST /review.
type AddReviewRequest struct {
	ProductID int64  `json:"productId" validate:"required"`
	UserID    int64  `json:"userId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=500"`
}

// AddReview submits a product review. The backend accepts a single review per
// (user, product) pair and rejects a second attempt.
func (c *Client) AddReview(ctx context.Context, req AddReviewRequest) (*models.Review, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	var review models.Review
	if _, err := c.do(ctx, http.MethodPost, "/review", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
