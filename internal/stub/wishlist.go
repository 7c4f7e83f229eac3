package stub

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
)

type addToWishlistRequest struct {
	ProductID     int64  `json:"productId" validate:"required"`
	ProductSizeID *int64 `json:"productSizeId"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
	Size          string `json:"size"`
}

func (s *Server) handleAddToWishlist(c *fiber.Ctx) error {
	var req addToWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if notFound(err) {
			return fail(c, fiber.StatusNotFound, "Product not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load product")
	}

	item := models.WishlistItem{
		UserID:        currentUserID(c),
		ProductID:     req.ProductID,
		ProductSizeID: req.ProductSizeID,
		Quantity:      req.Quantity,
		Size:          req.Size,
	}
	if err := s.db.Create(&item).Error; err != nil {
		log.Printf("error creating wishlist item: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not add to wishlist")
	}

	item.Product = product
	return ok(c, item, "Added to wishlist")
}

func (s *Server) handleGetWishlist(c *fiber.Ctx) error {
	var items []models.WishlistItem
	err := s.db.Preload("Product").Where("user_id = ?", currentUserID(c)).Order("id").Find(&items).Error
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load wishlist")
	}
	return ok(c, models.Wishlist{Items: items}, "")
}

func (s *Server) handleUpdateWishlistItem(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid wishlist item id")
	}

	var req struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	var item models.WishlistItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if notFound(err) {
			return fail(c, fiber.StatusNotFound, "Wishlist item not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load wishlist item")
	}
	if item.UserID != currentUserID(c) {
		return fail(c, fiber.StatusForbidden, "Cannot edit another user's wishlist")
	}

	item.Quantity = req.Quantity
	if err := s.db.Save(&item).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not update wishlist item")
	}

	s.db.Preload("Product").First(&item, item.ID)
	return ok(c, item, "Wishlist item updated")
}

func (s *Server) handleRemoveFromWishlist(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid wishlist item id")
	}

	result := s.db.Where("id = ? AND user_id = ?", itemID, currentUserID(c)).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not remove wishlist item")
	}
	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Wishlist item not found")
	}
	return ok(c, nil, "Removed from wishlist")
}

func (s *Server) handleClearWishlist(c *fiber.Ctx) error {
	if err := s.db.Where("user_id = ?", currentUserID(c)).Delete(&models.WishlistItem{}).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not clear wishlist")
	}
	return ok(c, nil, "Wishlist cleared")
}
