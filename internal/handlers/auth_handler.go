package handlers

import (
	"errors"
	"fmt"
	"log"

	"northwind/internal/models"
	"northwind/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler serves account registration and token issuing.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// LoginRequest is the body accepted by /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates an account. 201 with the stored user minus its
// password hash, 409 when the username or email is taken.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if failure := h.bind(c, &user); failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(failure)
	}

	err := h.authService.RegisterUser(&user)
	switch {
	case errors.Is(err, services.ErrUserExists):
		log.Printf("Rejected registration of %s: %v", user.Username, err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Registration failed",
			"error":   err.Error(),
		})
	case err != nil:
		log.Printf("Error registering %s: %v", user.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogin exchanges a username and password for a bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if failure := h.bind(c, &req); failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(failure)
	}

	token, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		log.Printf("Login refused for %s: %v", req.Username, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// bind decodes the body into dst and validates it. A non-nil result is the
// 400 body to send.
func (h *AuthHandler) bind(c *fiber.Ctx, dst interface{}) fiber.Map {
	if err := c.BodyParser(dst); err != nil {
		return fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		}
	}
	if err := h.validate.Struct(dst); err != nil {
		return validationFailure(err)
	}
	return nil
}

func validationFailure(err error) fiber.Map {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fiber.Map{"message": err.Error()}
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return fiber.Map{
		"message": "Validation failed",
		"errors":  fields,
	}
}
