package stub

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/api"
	"storefront/internal/models"
)

type addToCartRequest struct {
	ProductID     int64  `json:"productId" validate:"required"`
	ProductSizeID *int64 `json:"productSizeId"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
}

func (s *Server) handleAddToCart(c *fiber.Ctx) error {
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	var product models.Product
	if err := s.db.Preload("Sizes").First(&product, req.ProductID).Error; err != nil {
		if notFound(err) {
			return fail(c, fiber.StatusNotFound, "Product not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load product")
	}

	userID := currentUserID(c)

	// A repeated add for the same product/size increments the existing line.
	// There is no request dedup: two rapid adds increment twice.
	var item models.CartItem
	query := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID)
	if req.ProductSizeID != nil {
		query = query.Where("product_size_id = ?", *req.ProductSizeID)
	} else {
		query = query.Where("product_size_id IS NULL")
	}
	err := query.First(&item).Error

	newQuantity := req.Quantity
	if err == nil {
		newQuantity = item.Quantity + req.Quantity
	} else if !notFound(err) {
		return fail(c, fiber.StatusInternalServerError, "Could not load cart")
	}

	if exceeded := s.stockExceeded(&product, req.ProductSizeID, newQuantity); exceeded {
		// Soft rejection: HTTP success, business rule violated. The client
		// matches on this exact message.
		return ok(c, item, api.StockInsufficientMessage)
	}

	if item.ID == 0 {
		item = models.CartItem{
			UserID:        userID,
			ProductID:     req.ProductID,
			ProductSizeID: req.ProductSizeID,
			Quantity:      req.Quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			log.Printf("error creating cart item: %v", err)
			return fail(c, fiber.StatusInternalServerError, "Could not add to cart")
		}
	} else {
		item.Quantity = newQuantity
		if err := s.db.Save(&item).Error; err != nil {
			log.Printf("error updating cart item %d: %v", item.ID, err)
			return fail(c, fiber.StatusInternalServerError, "Could not add to cart")
		}
	}

	s.loadCartItem(&item)
	return ok(c, item, "Added to cart")
}

func (s *Server) handleGetCart(c *fiber.Ctx) error {
	var items []models.CartItem
	err := s.db.Preload("Product").Preload("Product.Sizes").Preload("ProductSize").
		Where("user_id = ?", currentUserID(c)).Order("id").Find(&items).Error
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load cart")
	}

	var total float64
	var count int
	for _, item := range items {
		total += float64(item.Quantity) * item.Product.Price
		count += item.Quantity
	}

	return ok(c, models.Cart{Items: items, Total: total, ItemCount: count}, "")
}

type updateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

func (s *Server) handleUpdateCartItem(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid cart item id")
	}

	var req updateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	var item models.CartItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if notFound(err) {
			return fail(c, fiber.StatusNotFound, "Cart item not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load cart item")
	}
	if item.UserID != currentUserID(c) {
		return fail(c, fiber.StatusForbidden, "Cannot edit another user's cart")
	}

	var product models.Product
	if err := s.db.Preload("Sizes").First(&product, item.ProductID).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load product")
	}

	if s.stockExceeded(&product, item.ProductSizeID, req.Quantity) {
		s.loadCartItem(&item)
		// Quantity stays as it was; only the message tells the client why.
		return ok(c, item, api.StockInsufficientMessage)
	}

	item.Quantity = req.Quantity
	if err := s.db.Save(&item).Error; err != nil {
		log.Printf("error updating cart item %d: %v", itemID, err)
		return fail(c, fiber.StatusInternalServerError, "Could not update cart item")
	}

	s.loadCartItem(&item)
	return ok(c, item, "Cart item updated")
}

func (s *Server) handleRemoveFromCart(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid cart item id")
	}

	result := s.db.Where("id = ? AND user_id = ?", itemID, currentUserID(c)).Delete(&models.CartItem{})
	if result.Error != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not remove cart item")
	}
	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Cart item not found")
	}
	return ok(c, nil, "Removed from cart")
}

func (s *Server) handleClearCart(c *fiber.Ctx) error {
	if err := s.db.Where("user_id = ?", currentUserID(c)).Delete(&models.CartItem{}).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not clear cart")
	}
	return ok(c, nil, "Cart cleared")
}

// stockExceeded checks the requested quantity against per-size stock when a
// size is chosen, product-wide stock otherwise (sum over sizes).
func (s *Server) stockExceeded(product *models.Product, sizeID *int64, quantity int) bool {
	if sizeID != nil {
		for _, size := range product.Sizes {
			if size.ID == *sizeID {
				return quantity > size.Stock
			}
		}
		return true // unknown size: nothing to sell
	}

	var total int
	for _, size := range product.Sizes {
		total += size.Stock
	}
	if len(product.Sizes) == 0 {
		return false
	}
	return quantity > total
}

// loadCartItem hydrates the nested product and size for a response.
func (s *Server) loadCartItem(item *models.CartItem) {
	if item.ID == 0 {
		return
	}
	if err := s.db.Preload("Product").Preload("Product.Sizes").Preload("ProductSize").
		First(item, item.ID).Error; err != nil {
		log.Printf("error hydrating cart item %d: %v", item.ID, err)
	}
}
