package stub

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

const deliveryLeadTime = 5 * 24 * time.Hour

type placeOrderRequest struct {
	UserID      int64  `json:"userId" validate:"required"`
	AddressID   int64  `json:"addressId" validate:"required"`
	PaymentMode string `json:"paymentMode" validate:"required"`
}

func (s *Server) handlePlaceOrder(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}
	if req.UserID != currentUserID(c) {
		return fail(c, fiber.StatusForbidden, "Cannot place an order for another user")
	}

	var address models.Address
	if err := s.db.First(&address, req.AddressID).Error; err != nil || address.UserID != req.UserID {
		return fail(c, fiber.StatusBadRequest, "Invalid delivery address")
	}

	var cartItems []models.CartItem
	if err := s.db.Preload("Product").Where("user_id = ?", req.UserID).Find(&cartItems).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load cart")
	}
	if len(cartItems) == 0 {
		return fail(c, fiber.StatusBadRequest, "Cart is empty")
	}

	order := models.Order{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		AddressID:    req.AddressID,
		Status:       models.OrderStatusPlaced,
		PaymentMode:  req.PaymentMode,
		DeliveryDate: time.Now().Add(deliveryLeadTime),
	}
	for _, item := range cartItems {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", req.UserID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		log.Printf("error placing order: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not place order")
	}

	// Best effort; orders do not fail because the broker is down.
	if s.mq != nil {
		event := map[string]interface{}{
			"orderID": order.ID,
			"userID":  order.UserID,
			"status":  order.Status,
		}
		if err := s.mq.PublishOrderCreated(event); err != nil {
			log.Printf("warning: failed to publish order created event for %s: %v", order.ID, err)
		}
	}

	s.db.Preload("Items.Product").Preload("Address").Preload("User").First(&order, "id = ?", order.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    order,
		"message": "Order placed successfully",
	})
}

// handleMyOrders answers with the legacy {orders: [...]} shape.
func (s *Server) handleMyOrders(c *fiber.Ctx) error {
	var orders []models.Order
	err := s.db.Preload("Items.Product").Preload("Address").Preload("User").
		Where("user_id = ?", currentUserID(c)).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}
