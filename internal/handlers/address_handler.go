package handlers

import (
	"toko/internal/middleware"
	"toko/internal/models"
	"toko/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the caller's shipping addresses.
type AddressHandler struct {
	service *services.AddressService
}

func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{service: service}
}

// RegisterRoutes registers the address routes. router must already require authentication.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/addresses")
	addressRoutes.Get("/", h.HandleGetAddresses)
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Put("/:id", h.HandleUpdateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
}

func (h *AddressHandler) HandleGetAddresses(c *fiber.Ctx) error {
	addresses, err := h.service.ListAddresses(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err, "Could not retrieve addresses")
	}
	return c.JSON(addresses)
}

func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return invalidBody(c, err)
	}
	if err := h.service.CreateAddress(c.UserContext(), middleware.UserID(c), &address); err != nil {
		return errorResponse(c, err, "Could not create address")
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

func (h *AddressHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return invalidBody(c, err)
	}
	address.ID = c.Params("id")
	if err := h.service.UpdateAddress(c.UserContext(), middleware.UserID(c), &address); err != nil {
		return errorResponse(c, err, "Could not update address")
	}
	return c.JSON(address)
}

func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	if err := h.service.DeleteAddress(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return errorResponse(c, err, "Could not delete address")
	}
	return c.JSON(fiber.Map{"message": "Address deleted"})
}
