package services

import (
	"context"
	"errors"
	"fmt"

	"toko/internal/models"
	"toko/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest is the body of an add-to-cart call.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CartService handles business logic related to carts.
type CartService struct {
	store    repositories.Transactor
	validate *validator.Validate
}

func NewCartService(store repositories.Transactor) *CartService {
	return &CartService{store: store, validate: validator.New()}
}

// GetCart returns the user's cart priced at current product prices. Lines
// whose product has been removed are skipped.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	items, err := s.store.Carts().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := &models.Cart{UserID: userID, Lines: make([]models.CartLine, 0, len(items)), Subtotal: decimal.Zero}
	for _, item := range items {
		product, err := s.store.Products().GetByID(ctx, item.ProductID)
		if errors.Is(err, repositories.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		cart.Lines = append(cart.Lines, models.CartLine{
			ItemID:         item.ID,
			ProductID:      product.ID,
			Name:           product.Name,
			Quantity:       item.Quantity,
			UnitPrice:      product.Price,
			AvailableStock: product.Stock,
			LineTotal:      lineTotal,
		})
		cart.Subtotal = cart.Subtotal.Add(lineTotal)
	}
	return cart, nil
}

// AddItem adds quantity units of a product to the cart, merging with an
// existing line. The merged quantity may not exceed current stock.
func (s *CartService) AddItem(ctx context.Context, userID string, req AddCartItemRequest) (*models.CartItem, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	var result *models.CartItem
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		product, err := tx.Products().GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrProductNotFound) {
				return &ProductNotFoundError{ProductID: req.ProductID}
			}
			return err
		}

		existing, err := tx.Carts().GetByProduct(ctx, userID, req.ProductID)
		if err != nil && !errors.Is(err, repositories.ErrCartItemNotFound) {
			return err
		}

		quantity := req.Quantity
		if existing != nil {
			quantity += existing.Quantity
		}
		if product.Stock < quantity {
			return &InsufficientStockError{ProductID: product.ID, Requested: quantity, Available: product.Stock}
		}

		if existing != nil {
			if err := tx.Carts().UpdateQuantity(ctx, existing.ID, quantity); err != nil {
				return err
			}
			existing.Quantity = quantity
			result = existing
			return nil
		}
		item := &models.CartItem{UserID: userID, ProductID: req.ProductID, Quantity: quantity}
		if err := tx.Carts().Create(ctx, item); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveItem deletes one line of the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	if err := s.store.Carts().Remove(ctx, userID, itemID); err != nil {
		if errors.Is(err, repositories.ErrCartItemNotFound) {
			return fmt.Errorf("cart item %s: %w", itemID, ErrCartItemNotFound)
		}
		return err
	}
	return nil
}

// ClearCart deletes every line of the user's cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	_, err := s.store.Carts().ClearByUser(ctx, userID)
	return err
}
