package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/basket/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateBasket(t *testing.T) {
	validBasket := func() *model.Basket {
		return &model.Basket{
			ID:       "basket-1",
			Customer: "1808",
			Date:     time.Date(2015, 7, 21, 0, 0, 0, 0, time.UTC),
			Source:   model.SourceCSV,
			Items:    []string{"tropical fruit", "whole milk"},
		}
	}

	tests := []struct {
		basket  *model.Basket
		name    string
		wantErr bool
	}{
		{
			name:    "valid basket",
			basket:  validBasket(),
			wantErr: false,
		},
		{
			name:    "nil basket",
			basket:  nil,
			wantErr: true,
		},
		{
			name: "single item basket",
			basket: func() *model.Basket {
				b := validBasket()
				b.Items = []string{"soda"}
				return b
			}(),
			wantErr: false,
		},
		{
			name: "empty items",
			basket: func() *model.Basket {
				b := validBasket()
				b.Items = []string{}
				return b
			}(),
			wantErr: true,
		},
		{
			name: "zero date",
			basket: func() *model.Basket {
				b := validBasket()
				b.Date = time.Time{}
				return b
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBasket(tt.basket)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBasket() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBaskets(t *testing.T) {
	valid := model.Basket{
		ID:       "basket-1",
		Customer: "1808",
		Date:     time.Now(),
		Source:   model.SourceOFX,
		Items:    []string{"Starbucks"},
	}

	tests := []struct {
		name    string
		errText string
		baskets []model.Basket
		wantErr bool
	}{
		{
			name:    "valid baskets",
			baskets: []model.Basket{valid, valid},
			wantErr: false,
		},
		{
			name:    "nil slice",
			baskets: nil,
			wantErr: true,
		},
		{
			name:    "empty slice",
			baskets: []model.Basket{},
			wantErr: true,
		},
		{
			name:    "invalid basket in slice",
			baskets: []model.Basket{valid, {ID: "basket-2"}},
			wantErr: true,
			errText: "index 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBaskets(tt.baskets)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBaskets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.errText != "" && (err == nil || !strings.Contains(err.Error(), tt.errText)) {
				t.Errorf("validateBaskets() error should contain %q, got %v", tt.errText, err)
			}
		})
	}
}

func TestValidateRun(t *testing.T) {
	tests := []struct {
		run     *model.MiningRun
		name    string
		wantErr bool
	}{
		{
			name:    "valid run",
			run:     &model.MiningRun{ID: "run-1", CreatedAt: time.Now(), MinSupport: 0.0008},
			wantErr: false,
		},
		{
			name:    "nil run",
			run:     nil,
			wantErr: true,
		},
		{
			name:    "negative support",
			run:     &model.MiningRun{ID: "run-1", CreatedAt: time.Now(), MinSupport: -0.1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRun(tt.run)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRun() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
