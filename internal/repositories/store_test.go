package repositories_test

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"toko/internal/database"
	"toko/internal/models"
	"toko/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "toko.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createProduct(t *testing.T, repo repositories.ProductRepository, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: "Kaos Polos", Price: decimal.RequireFromString("49.90"), Category: "shirts", Size: "M", Stock: stock}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestGORMProductRepository_DecrementStock(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	product := createProduct(t, repo, 3)

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 2))

	err := repo.DecrementStock(ctx, product.ID, 2)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 1))
	assert.ErrorIs(t, repo.DecrementStock(ctx, product.ID, 1), repositories.ErrInsufficientStock)
	assert.ErrorIs(t, repo.DecrementStock(ctx, "missing", 1), repositories.ErrInsufficientStock)

	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
}

func TestGORMProductRepository_FilterAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	shirt := createProduct(t, repo, 1)
	require.NoError(t, repo.Create(ctx, &models.Product{Name: "Celana Chino", Price: decimal.NewFromInt(150), Category: "pants", Size: "L", Stock: 4}))

	shirts, err := repo.GetAll(ctx, repositories.ProductFilter{Category: "shirts"})
	require.NoError(t, err)
	require.Len(t, shirts, 1)
	assert.Equal(t, shirt.ID, shirts[0].ID)
	assert.True(t, shirts[0].Price.Equal(decimal.RequireFromString("49.90")))

	large, err := repo.GetAll(ctx, repositories.ProductFilter{Size: "L"})
	require.NoError(t, err)
	assert.Len(t, large, 1)

	require.NoError(t, repo.Delete(ctx, shirt.ID))
	_, err = repo.GetByID(ctx, shirt.ID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, shirt.ID), repositories.ErrProductNotFound)

	all, err := repo.GetAll(ctx, repositories.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGORMProductRepository_Categories(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	createProduct(t, repo, 1)
	createProduct(t, repo, 2)
	retired := createProduct(t, repo, 3)
	require.NoError(t, repo.Create(ctx, &models.Product{Name: "Celana Chino", Price: decimal.NewFromInt(150), Category: "pants", Stock: 4}))
	require.NoError(t, repo.Create(ctx, &models.Product{Name: "Gift Card", Price: decimal.NewFromInt(50), Stock: 9}))
	require.NoError(t, repo.Delete(ctx, retired.ID))

	categories, err := repo.Categories(ctx)

	require.NoError(t, err)
	assert.Equal(t, []models.CategorySummary{
		{Name: "pants", ProductCount: 1},
		{Name: "shirts", ProductCount: 2},
	}, categories)
}

func TestGORMStore_WithinTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := repositories.NewGORMStore(db)
	product := createProduct(t, store.Products(), 5)
	errBoom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(tx repositories.Store) error {
		require.NoError(t, tx.Products().DecrementStock(ctx, product.ID, 2))
		require.NoError(t, tx.Carts().Create(ctx, &models.CartItem{UserID: "user-a", ProductID: product.ID, Quantity: 1}))
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	stored, err := store.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)
	items, err := store.Carts().ListByUser(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, store.WithinTransaction(ctx, func(tx repositories.Store) error {
		return tx.Products().DecrementStock(ctx, product.ID, 2)
	}))
	stored, err = store.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)
}

func TestGORMStore_WithinTransactionRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewGORMStore(newTestDB(t))
	product := createProduct(t, store.Products(), 5)

	assert.Panics(t, func() {
		_ = store.WithinTransaction(ctx, func(tx repositories.Store) error {
			if err := tx.Products().DecrementStock(ctx, product.ID, 5); err != nil {
				return err
			}
			panic("handler bug")
		})
	})

	stored, err := store.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)
}

func TestGORMOrderRepository_ItemsAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMOrderRepository(newTestDB(t))

	order := &models.Order{UserID: "user-a", AddressID: "addr-1", Subtotal: decimal.RequireFromString("30.00"), Status: models.OrderStatusPending}
	require.NoError(t, repo.Create(ctx, order))
	require.NotEmpty(t, order.ID)
	for i, price := range []string{"10.00", "20.00"} {
		require.NoError(t, repo.AddItem(ctx, &models.OrderItem{
			OrderID:   order.ID,
			Line:      i + 1,
			ProductID: price,
			Quantity:  1,
			UnitPrice: decimal.RequireFromString(price),
		}))
	}

	stored, err := repo.GetForUser(ctx, order.ID, "user-a")
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, 1, stored.Items[0].Line)
	assert.Equal(t, 2, stored.Items[1].Line)

	_, err = repo.GetForUser(ctx, order.ID, "user-b")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, models.OrderStatusProcessing))
	updated, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", models.OrderStatusShipped), repositories.ErrOrderNotFound)
}
