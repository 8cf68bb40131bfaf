// Package sheets publishes stored mining runs to Google Sheets.
package sheets

import (
	"errors"
	"time"
)

// DefaultSpreadsheetName is used when no spreadsheet ID or name is configured.
const DefaultSpreadsheetName = "Basket Rules"

// Configuration errors.
var (
	ErrNoAuth        = errors.New("no authentication method configured")
	ErrMultipleAuth  = errors.New("multiple authentication methods configured; use either OAuth2 or service account")
	ErrBatchSize     = errors.New("batch size must be positive")
	ErrRetryAttempts = errors.New("retry attempts cannot be negative")
	ErrRetryDelay    = errors.New("retry delay cannot be negative")
	ErrPrecision     = errors.New("precision must be between 0 and 10")
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	Precision          int32 // Decimal places for support, confidence and lift
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		EnableFormatting: true,
		TimeZone:         "UTC",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		Precision:        4,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	// Check authentication
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return ErrNoAuth
	}

	if hasOAuth && hasServiceAccount {
		return ErrMultipleAuth
	}

	if c.BatchSize <= 0 {
		return ErrBatchSize
	}

	if c.RetryAttempts < 0 {
		return ErrRetryAttempts
	}

	if c.RetryDelay < 0 {
		return ErrRetryDelay
	}

	if c.Precision < 0 || c.Precision > 10 {
		return ErrPrecision
	}

	return nil
}
