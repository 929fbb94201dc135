package repositories

import (
	"context"

	"toko/internal/models"
)

// ProductFilter narrows GetAll results. Empty fields are ignored.
type ProductFilter struct {
	Category string
	Size     string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]models.CategorySummary, error)

	// DecrementStock subtracts quantity from the product's stock only if at least
	// quantity units remain. Returns ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id string, quantity int) error
}
