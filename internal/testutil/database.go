// Package testutil provides test utilities for the basket project.
// It offers an in-memory database with seeded baskets and reusable basket fixtures.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/basket/internal/model"
	"github.com/Veraticus/basket/internal/service"
	"github.com/Veraticus/basket/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
	Baskets []model.Basket
}

// SetupTestDB creates a new in-memory test database seeded with the given baskets.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.BreakfastBaskets()...)
func SetupTestDB(t *testing.T, baskets ...model.Basket) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(baskets) > 0 {
		if _, err := store.SaveBaskets(ctx, baskets); err != nil {
			t.Fatalf("failed to seed baskets: %v", err)
		}
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		Baskets: baskets,
		t:       t,
	}
}

// MustCountBaskets returns the number of stored baskets or fails the test.
func (db *TestDB) MustCountBaskets() int {
	db.t.Helper()
	n, err := db.Storage.CountBaskets(context.Background())
	if err != nil {
		db.t.Fatalf("failed to count baskets: %v", err)
	}
	return n
}

// NewBaskets builds CSV-sourced baskets from item lists, one customer per basket,
// on consecutive days starting 2024-01-01.
func NewBaskets(rows ...[]string) []model.Basket {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Basket, 0, len(rows))
	for i, items := range rows {
		b := model.Basket{
			ID:       fmt.Sprintf("test-%04d", i+1),
			Customer: fmt.Sprintf("%04d", i+1),
			Date:     base.AddDate(0, 0, i),
			Source:   model.SourceCSV,
		}
		for _, item := range items {
			b.AddItem(item)
		}
		b.Hash = b.GenerateHash()
		out = append(out, b)
	}
	return out
}

// BreakfastBaskets is the four-basket milk/bread/eggs dataset.
// Supports: milk 0.75, bread 0.75, eggs 0.5, {milk,bread} 0.5, {bread,eggs} 0.5.
func BreakfastBaskets() []model.Basket {
	return NewBaskets(
		[]string{"milk", "bread"},
		[]string{"milk", "bread", "eggs"},
		[]string{"bread", "eggs"},
		[]string{"milk"},
	)
}

// GroceryBaskets is a slightly larger dataset with one strong three-item association.
func GroceryBaskets() []model.Basket {
	return NewBaskets(
		[]string{"whole milk", "rolls/buns", "yogurt"},
		[]string{"whole milk", "rolls/buns", "yogurt", "soda"},
		[]string{"whole milk", "rolls/buns", "yogurt"},
		[]string{"soda", "bottled water"},
		[]string{"whole milk", "other vegetables"},
		[]string{"rolls/buns", "sausage"},
		[]string{"soda", "bottled water", "sausage"},
		[]string{"whole milk", "yogurt", "other vegetables"},
	)
}
