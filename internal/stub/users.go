package stub

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"storefront/internal/models"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Address  string `json:"address" validate:"omitempty,max=255"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	var existing models.User
	if err := s.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		return fail(c, fiber.StatusConflict, "Username or email already registered")
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		log.Printf("error hashing password: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not register user")
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: hashed,
	}
	if err := s.db.Create(&user).Error; err != nil {
		log.Printf("error creating user: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not register user")
	}

	token, err := s.mintToken(&user)
	if err != nil {
		log.Printf("error minting token: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not register user")
	}

	return ok(c, fiber.Map{"user": user, "token": token}, "User registered successfully")
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		// Do not reveal whether the username exists.
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !checkPassword(user.Password, req.Password) {
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := s.mintToken(&user)
	if err != nil {
		log.Printf("error minting token: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not log in")
	}

	return ok(c, fiber.Map{"user": user, "token": token}, "Login successful")
}

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	var user models.User
	if err := s.db.First(&user, currentUserID(c)).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	return ok(c, user, "")
}

type profileUpdateRequest struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	var user models.User
	if err := s.db.First(&user, currentUserID(c)).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	now := time.Now()
	user.UpdatedAt = &now

	if err := s.db.Save(&user).Error; err != nil {
		log.Printf("error updating profile: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Could not update profile")
	}

	token, err := s.mintToken(&user)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not update profile")
	}
	return ok(c, fiber.Map{"user": user, "token": token}, "Profile updated successfully")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (s *Server) handleChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	var user models.User
	if err := s.db.First(&user, currentUserID(c)).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if !checkPassword(user.Password, req.CurrentPassword) {
		return fail(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not change password")
	}
	if err := s.db.Model(&user).Update("password", hashed).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not change password")
	}

	return ok(c, nil, "Password changed successfully")
}

// failValidation maps validator errors onto the envelope's message field.
func failValidation(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fail(c, fiber.StatusBadRequest, "Field '"+e.Field()+"' failed on the '"+e.Tag()+"' rule")
	}
	return fail(c, fiber.StatusBadRequest, "Validation failed")
}

// notFound is a shared helper for record lookups.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
