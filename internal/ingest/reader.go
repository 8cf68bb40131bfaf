// Package ingest turns purchase exports into baskets ready for storage.
package ingest

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/Veraticus/basket/internal/model"
)

// Ingestion errors.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoBaskets     = errors.New("input contains no baskets")
)

// Reader parses an export into baskets.
type Reader interface {
	Read(ctx context.Context, r io.Reader) ([]model.Basket, error)
}

// basketKey identifies one purchase event.
type basketKey struct {
	customer string
	day      string
}

// grouper accumulates items into baskets keyed by customer and day.
type grouper struct {
	source  model.BasketSource
	prefix  string
	baskets map[basketKey]*model.Basket
}

func newGrouper(source model.BasketSource, prefix string) *grouper {
	return &grouper{
		source:  source,
		prefix:  prefix,
		baskets: make(map[basketKey]*model.Basket),
	}
}

func (g *grouper) add(customer string, date time.Time, item string) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	key := basketKey{customer: customer, day: day.Format("20060102")}

	b, ok := g.baskets[key]
	if !ok {
		b = &model.Basket{
			ID:       g.prefix + "-" + customer + "-" + key.day,
			Customer: customer,
			Date:     day,
			Source:   g.source,
		}
		g.baskets[key] = b
	}
	b.AddItem(item)
}

// result returns the non-empty baskets ordered by date then customer, with hashes set.
func (g *grouper) result() []model.Basket {
	out := make([]model.Basket, 0, len(g.baskets))
	for _, b := range g.baskets {
		if len(b.Items) == 0 {
			continue
		}
		b.Hash = b.GenerateHash()
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Customer < out[j].Customer
	})
	return out
}
