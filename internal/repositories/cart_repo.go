package repositories

import (
	"context"

	"toko/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	GetByProduct(ctx context.Context, userID, productID string) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	// ClearByUser deletes every cart line of the user and returns how many were removed.
	ClearByUser(ctx context.Context, userID string) (int64, error)
}
