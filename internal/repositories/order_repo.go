package repositories

import (
	"context"

	"toko/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetForUser(ctx context.Context, id, userID string) (*models.Order, error)
	// Create inserts the order row only; items are added with AddItem.
	Create(ctx context.Context, order *models.Order) error
	AddItem(ctx context.Context, item *models.OrderItem) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	// Delete(id string) error // Orders are never deleted, only cancelled.
}
