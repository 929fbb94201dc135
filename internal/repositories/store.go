package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle.
type Store interface {
	Products() ProductRepository
	Carts() CartRepository
	Addresses() AddressRepository
	Orders() OrderRepository
}

// Transactor is a Store that can also run a function inside a transaction.
// The Store handed to fn is bound to the transaction; fn returning an error
// (or panicking) rolls back every write made through it.
type Transactor interface {
	Store
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}

// GORMStore implements Transactor on top of a *gorm.DB.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a store over db. db may itself be a transaction handle.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Products() ProductRepository  { return NewGORMProductRepository(s.db) }
func (s *GORMStore) Carts() CartRepository        { return NewGORMCartRepository(s.db) }
func (s *GORMStore) Addresses() AddressRepository { return NewGORMAddressRepository(s.db) }
func (s *GORMStore) Orders() OrderRepository      { return NewGORMOrderRepository(s.db) }

// WithinTransaction runs fn in a GORM transaction. A cancelled ctx aborts the
// in-flight statement and the transaction is rolled back.
func (s *GORMStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMStore(tx))
	})
}
