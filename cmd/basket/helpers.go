package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/basket/internal/config"
	"github.com/Veraticus/basket/internal/model"
	"github.com/Veraticus/basket/internal/service"
	"github.com/Veraticus/basket/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// closeStorage closes store and logs any failure.
func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// addFilterFlags registers the basket filter flags on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("since", "", "Only use baskets on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("until", "", "Only use baskets on or before this date (YYYY-MM-DD)")
	cmd.Flags().String("source", "", "Only use baskets from this source (csv, ofx)")
}

// basketFilter builds a BasketFilter from the flags added by addFilterFlags.
func basketFilter(cmd *cobra.Command) (service.BasketFilter, error) {
	var filter service.BasketFilter

	since, _ := cmd.Flags().GetString("since")
	if since != "" {
		t, err := time.Parse(time.DateOnly, since)
		if err != nil {
			return filter, fmt.Errorf("invalid --since date %q: %w", since, err)
		}
		filter.StartDate = &t
	}

	until, _ := cmd.Flags().GetString("until")
	if until != "" {
		t, err := time.Parse(time.DateOnly, until)
		if err != nil {
			return filter, fmt.Errorf("invalid --until date %q: %w", until, err)
		}
		// Include the whole day
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	source, _ := cmd.Flags().GetString("source")
	switch strings.ToUpper(source) {
	case "":
	case string(model.SourceCSV):
		filter.Source = model.SourceCSV
	case string(model.SourceOFX):
		filter.Source = model.SourceOFX
	default:
		return filter, fmt.Errorf("invalid --source %q (want csv or ofx)", source)
	}

	return filter, nil
}
