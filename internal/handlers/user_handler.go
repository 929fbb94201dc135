package handlers

import (
	"toko/internal/middleware"
	"toko/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers the profile routes. router must already require authentication.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetProfile)
	userRoutes.Put("/me", h.HandleUpdateProfile)
	userRoutes.Delete("/me", h.HandleDeleteProfile)
}

func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err, "Could not retrieve profile")
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	user, err := h.service.UpdateProfile(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return errorResponse(c, err, "Could not update profile")
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}

func (h *UserHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	if err := h.service.DeleteProfile(c.UserContext(), middleware.UserID(c)); err != nil {
		return errorResponse(c, err, "Could not delete profile")
	}
	return c.JSON(fiber.Map{"message": "Profile deleted successfully"})
}
