package stub

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
)

type addReviewRequest struct {
	ProductID int64  `json:"productId" validate:"required"`
	UserID    int64  `json:"userId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=500"`
}

func (s *Server) handleAddReview(c *fiber.Ctx) error {
	var req addReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}
	if req.UserID != currentUserID(c) {
		return fail(c, fiber.StatusForbidden, "Cannot review as another user")
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if notFound(err) {
			return fail(c, fiber.StatusNotFound, "Product not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load product")
	}

	// One review per user per product.
	var existing models.Review
	if err := s.db.Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).
		First(&existing).Error; err == nil {
		return fail(c, fiber.StatusConflict, "You have already reviewed this product")
	}

	review := models.Review{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		log.Printf("error creating review: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not save review")
	}

	return ok(c, review, "Review submitted")
}
