package stub

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"storefront/internal/models"
)

func (s *Server) handleAddAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	address.ID = 0
	address.UserID = currentUserID(c)
	if err := s.validate.Struct(address); err != nil {
		return failValidation(c, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", address.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		log.Printf("error creating address: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not save address")
	}

	return ok(c, address, "Address added successfully")
}

// handleGetAddresses answers GET /address/:id where :id is the user id,
// with the legacy {addresses: [...]} shape the app expects.
func (s *Server) handleGetAddresses(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user id")
	}
	if userID != currentUserID(c) {
		return fail(c, fiber.StatusForbidden, "Cannot read another user's addresses")
	}

	var addresses []models.Address
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&addresses).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load addresses")
	}
	return c.JSON(fiber.Map{"addresses": addresses})
}

func (s *Server) handleUpdateAddress(c *fiber.Ctx) error {
	addressID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid address id")
	}

	var existing models.Address
	if err := s.db.First(&existing, addressID).Error; err != nil {
		if notFound(err) {
			return fail(c, fiber.StatusNotFound, "Address not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load address")
	}
	if existing.UserID != currentUserID(c) {
		return fail(c, fiber.StatusForbidden, "Cannot edit another user's address")
	}

	var updated models.Address
	if err := c.BodyParser(&updated); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	updated.ID = addressID
	updated.UserID = existing.UserID
	if err := s.validate.Struct(updated); err != nil {
		return failValidation(c, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if updated.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND id <> ?", updated.UserID, addressID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&updated).Error
	})
	if err != nil {
		log.Printf("error updating address %d: %v", addressID, err)
		return fail(c, fiber.StatusInternalServerError, "Could not update address")
	}

	return c.JSON(fiber.Map{"success": true})
}
