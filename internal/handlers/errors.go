package handlers

import (
	"errors"
	"log"

	"toko/internal/services"

	"github.com/gofiber/fiber/v2"
)

// errorResponse maps service errors to HTTP responses. Validation and
// not-found kinds carry their reason; anything else is logged and answered
// with a generic 500 so storage details never leave the server.
func errorResponse(c *fiber.Ctx, err error, fallback string) error {
	var (
		validationErr *services.ValidationError
		productErr    *services.ProductNotFoundError
		stockErr      *services.InsufficientStockError
	)
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	case errors.Is(err, services.ErrInvalidRequest), errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cart is empty",
			"error":   "empty_cart",
		})
	case errors.As(err, &productErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message":    productErr.Error(),
			"error":      "product_not_found",
			"product_id": productErr.ProductID,
		})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":    stockErr.Error(),
			"error":      "insufficient_stock",
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		})
	case errors.Is(err, services.ErrAddressNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Address not found",
			"error":   "address_not_found",
		})
	case errors.Is(err, services.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	case errors.Is(err, services.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "User already exists",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	case errors.Is(err, services.ErrCartItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Cart item not found",
		})
	}

	log.Printf("%s: %v", fallback, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
