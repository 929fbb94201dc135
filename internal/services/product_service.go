package services

import (
	"context"
	"errors"
	"fmt"

	"toko/internal/models"
	"toko/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves products, optionally filtered by category and size.
func (s *ProductService) GetAllProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(ctx, filter)
}

// ListCategories returns every category in use with its product count.
func (s *ProductService) ListCategories(ctx context.Context) ([]models.CategorySummary, error) {
	return s.repo.Categories(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateProductErr(id, err)
	}
	return product, nil
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct validates and updates an existing product. Orders already
// placed keep the price they were placed at.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}
	return translateProductErr(product.ID, s.repo.Update(ctx, product))
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return translateProductErr(id, s.repo.Delete(ctx, id))
}

func (s *ProductService) validateProduct(product *models.Product) error {
	if err := validateStruct(s.validate, product); err != nil {
		return err
	}
	if !product.Price.IsPositive() {
		return &ValidationError{Fields: map[string]string{"Price": "Field 'Price' must be greater than 0"}}
	}
	return nil
}

func translateProductErr(id string, err error) error {
	if err != nil && errors.Is(err, repositories.ErrProductNotFound) {
		return &ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return fmt.Errorf("product %s: %w", id, err)
	}
	return nil
}
