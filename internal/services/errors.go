package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAddressNotFound   = errors.New("address not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrTransactionFailed = errors.New("transaction failed")
)

// ProductNotFoundError reports a cart line whose product no longer exists.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// InsufficientStockError reports a line that asks for more units than remain.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)", e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// AddressNotFoundError reports an address that does not exist or belongs to another user.
type AddressNotFoundError struct {
	AddressID string
}

func (e *AddressNotFoundError) Error() string {
	return fmt.Sprintf("address %s not found", e.AddressID)
}

func (e *AddressNotFoundError) Is(target error) bool { return target == ErrAddressNotFound }

// TransactionFailedError wraps a storage failure together with the placement
// stage it happened in. The underlying cause is kept for logs only.
type TransactionFailedError struct {
	Stage PlacementStage
	Err   error
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction failed while %s: %v", e.Stage, e.Err)
}

func (e *TransactionFailedError) Unwrap() error { return e.Err }

func (e *TransactionFailedError) Is(target error) bool { return target == ErrTransactionFailed }

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %d field(s) failed validation", len(e.Fields))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRequest }
