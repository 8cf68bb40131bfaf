// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/basket/internal/model"
)

// BasketFilter defines filtering options for basket queries.
type BasketFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Source    model.BasketSource
	Limit     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Basket operations
	SaveBaskets(ctx context.Context, baskets []model.Basket) (int, error)
	GetBaskets(ctx context.Context, filter BasketFilter) ([]model.Basket, error)
	CountBaskets(ctx context.Context) (int, error)
	GetItemFrequencies(ctx context.Context, limit int) ([]model.ItemFrequency, error)
	CountDistinctItems(ctx context.Context) (int, error)

	// Mining run operations
	SaveRun(ctx context.Context, run *model.MiningRun, itemsets []model.FrequentItemset, rules []model.AssociationRule) error
	GetRun(ctx context.Context, id string) (*model.MiningRun, error)
	ListRuns(ctx context.Context, limit int) ([]model.MiningRun, error)
	GetRunItemsets(ctx context.Context, runID string) ([]model.FrequentItemset, error)
	GetRunRules(ctx context.Context, runID string) ([]model.AssociationRule, error)
	DeleteRun(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter publishes a stored mining run to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report *RunReport) error
}

// RunReport bundles a run with its results for report writers.
type RunReport struct {
	Run      *model.MiningRun
	Itemsets []model.FrequentItemset
	Rules    []model.AssociationRule
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
