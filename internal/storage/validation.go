// Package storage provides the data persistence layer for the basket application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/basket/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidBasket = errors.New("invalid basket")
	ErrInvalidRun    = errors.New("invalid mining run")
	ErrRunNotFound   = errors.New("mining run not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBaskets validates a slice of baskets.
func validateBaskets(baskets []model.Basket) error {
	if baskets == nil {
		return fmt.Errorf("%w: baskets", ErrNilParameter)
	}
	if len(baskets) == 0 {
		return fmt.Errorf("%w: baskets", ErrEmptySlice)
	}

	for i := range baskets {
		if err := validateBasket(&baskets[i]); err != nil {
			return fmt.Errorf("basket at index %d: %w", i, err)
		}
	}
	return nil
}

// validateBasket validates a single basket.
func validateBasket(b *model.Basket) error {
	if b == nil {
		return fmt.Errorf("%w: basket", ErrNilParameter)
	}
	if b.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidBasket)
	}
	if b.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidBasket)
	}
	if b.Customer == "" {
		return fmt.Errorf("%w: missing customer", ErrInvalidBasket)
	}
	if b.Source == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidBasket)
	}
	if len(b.Items) == 0 {
		return fmt.Errorf("%w: basket %s has no items", ErrInvalidBasket, b.ID)
	}
	return nil
}

// validateRun validates a mining run before it is stored.
func validateRun(run *model.MiningRun) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	if run.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInvalidRun)
	}
	if math.IsNaN(run.MinSupport) || run.MinSupport <= 0 {
		return fmt.Errorf("%w: min support must be positive", ErrInvalidRun)
	}
	return nil
}
