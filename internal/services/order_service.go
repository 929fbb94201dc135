package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"toko/internal/models"
	"toko/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlacementStage is the step an order placement has reached.
type PlacementStage string

const (
	StageOpen       PlacementStage = "opening"
	StageValidating PlacementStage = "validating"
	StageComputing  PlacementStage = "computing"
	StagePersisting PlacementStage = "persisting"
	StageCommitted  PlacementStage = "committed"
	StageRolledBack PlacementStage = "rolled back"
)

// OrderPlacedRoutingKey is the routing key of the event published after commit.
const OrderPlacedRoutingKey = "order.placed"

// PlaceOrderRequest is the input of PlaceOrder. UserID comes from the
// authenticated session, AddressID from the request body.
type PlaceOrderRequest struct {
	UserID    string `json:"-" validate:"required"`
	AddressID string `json:"address_id" validate:"required"`
}

// EventPublisher publishes domain events. Implementations must be safe for
// concurrent use.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	store     repositories.Transactor
	publisher EventPublisher // optional
	validate  *validator.Validate
	timeout   time.Duration
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil. A positive
// timeout bounds every PlaceOrder call.
func NewOrderService(store repositories.Transactor, publisher EventPublisher, timeout time.Duration) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		validate:  validator.New(),
		timeout:   timeout,
		now:       time.Now,
	}
}

// checkoutLine is a cart line paired with the product row read inside the transaction.
type checkoutLine struct {
	item    models.CartItem
	product *models.Product
}

// PlaceOrder converts the user's cart into an order. Cart, address and
// products are read inside one transaction; the order, its items, the stock
// decrements and the cart clear are committed together or not at all.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var order *models.Order
	stage := StageOpen
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		stage = StageValidating
		lines, err := s.loadLines(ctx, tx, req)
		if err != nil {
			return err
		}

		stage = StageComputing
		subtotal := decimal.Zero
		for _, l := range lines {
			subtotal = subtotal.Add(l.product.Price.Mul(decimal.NewFromInt(int64(l.item.Quantity))))
		}

		stage = StagePersisting
		order, err = s.persist(ctx, tx, req, lines, subtotal)
		return err
	})
	if err != nil {
		err = placementError(stage, err)
		log.Printf("Order placement for user %s %s while %s: %v", req.UserID, StageRolledBack, stage, err)
		return nil, err
	}

	log.Printf("Order %s %s for user %s (subtotal %s, %d items)", order.ID, StageCommitted, order.UserID, order.Subtotal, len(order.Items))
	s.publishOrderPlaced(order)
	return order, nil
}

// loadLines checks the address, reads the cart and its products, and
// validates existence and stock, in that order.
func (s *OrderService) loadLines(ctx context.Context, tx repositories.Store, req PlaceOrderRequest) ([]checkoutLine, error) {
	if _, err := tx.Addresses().GetForUser(ctx, req.AddressID, req.UserID); err != nil {
		if errors.Is(err, repositories.ErrAddressNotFound) {
			return nil, &AddressNotFoundError{AddressID: req.AddressID}
		}
		return nil, err
	}

	items, err := tx.Carts().ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]checkoutLine, 0, len(items))
	for _, item := range items {
		product, err := tx.Products().GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrProductNotFound) {
				return nil, &ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, err
		}
		lines = append(lines, checkoutLine{item: item, product: product})
	}

	for _, l := range lines {
		if l.product.Stock < l.item.Quantity {
			return nil, &InsufficientStockError{
				ProductID: l.item.ProductID,
				Requested: l.item.Quantity,
				Available: l.product.Stock,
			}
		}
	}
	return lines, nil
}

func (s *OrderService) persist(ctx context.Context, tx repositories.Store, req PlaceOrderRequest, lines []checkoutLine, subtotal decimal.Decimal) (*models.Order, error) {
	now := s.now().UTC()
	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		AddressID: req.AddressID,
		Subtotal:  subtotal,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Orders().Create(ctx, order); err != nil {
		return nil, err
	}

	order.Items = make([]models.OrderItem, 0, len(lines))
	for i, l := range lines {
		item := models.OrderItem{
			OrderID:   order.ID,
			Line:      i + 1,
			ProductID: l.item.ProductID,
			Quantity:  l.item.Quantity,
			UnitPrice: l.product.Price,
			CreatedAt: now,
		}
		if err := tx.Orders().AddItem(ctx, &item); err != nil {
			return nil, err
		}
		if err := tx.Products().DecrementStock(ctx, l.item.ProductID, l.item.Quantity); err != nil {
			if errors.Is(err, repositories.ErrInsufficientStock) {
				return nil, s.stockConflict(ctx, tx, l.item)
			}
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if _, err := tx.Carts().ClearByUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// stockConflict builds the error for a floor check that lost to a concurrent
// order, reporting the stock that is left now.
func (s *OrderService) stockConflict(ctx context.Context, tx repositories.Store, item models.CartItem) error {
	product, err := tx.Products().GetByID(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return &ProductNotFoundError{ProductID: item.ProductID}
		}
		return err
	}
	return &InsufficientStockError{
		ProductID: item.ProductID,
		Requested: item.Quantity,
		Available: product.Stock,
	}
}

// placementError passes validation failures through and wraps everything
// else as a transaction failure.
func placementError(stage PlacementStage, err error) error {
	switch {
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrAddressNotFound):
		return err
	}
	return &TransactionFailedError{Stage: stage, Err: err}
}

func (s *OrderService) publishOrderPlaced(order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured. Skipping order.placed event.")
		return
	}
	event := models.OrderPlacedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		AddressID: order.AddressID,
		Subtotal:  order.Subtotal,
		Items:     order.Items,
		PlacedAt:  order.CreatedAt,
	}
	if err := s.publisher.Publish(OrderPlacedRoutingKey, event); err != nil {
		log.Printf("Warning: Failed to publish order placed event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Successfully published order placed event for order %s", order.ID)
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.Orders().ListByUser(ctx, userID)
}

// GetOrder returns one of the user's orders.
func (s *OrderService) GetOrder(ctx context.Context, userID, id string) (*models.Order, error) {
	order, err := s.store.Orders().GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
		}
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus updates the status of an existing order and returns it.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if err := s.store.Orders().UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order %s: %w", id, err)
	}
	return order, nil
}
