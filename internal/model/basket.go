// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"slices"
	"strings"
	"time"
)

// BasketSource indicates where a basket was imported from.
type BasketSource string

const (
	// SourceCSV is a row-per-item purchase export grouped by customer and date.
	SourceCSV BasketSource = "CSV"
	// SourceOFX is a bank or card statement grouped by account and posting day.
	SourceOFX BasketSource = "OFX"
)

// Basket is one purchase event: the set of items a customer bought on one day.
type Basket struct {
	Date     time.Time
	ID       string
	Customer string // Member number or account ID
	Hash     string
	Source   BasketSource
	Items    []string // Deduplicated item labels
}

// GenerateHash creates a unique hash for duplicate detection.
// Item order does not affect the hash.
func (b *Basket) GenerateHash() string {
	items := slices.Clone(b.Items)
	slices.Sort(items)
	data := fmt.Sprintf("%s:%s:%s:%s",
		b.Source,
		b.Customer,
		b.Date.Format("2006-01-02"),
		strings.Join(items, "|"))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// AddItem appends item unless it is empty or already present.
func (b *Basket) AddItem(item string) {
	item = strings.TrimSpace(item)
	if item == "" || slices.Contains(b.Items, item) {
		return
	}
	b.Items = append(b.Items, item)
}

// ItemFrequency counts the baskets an item appears in.
type ItemFrequency struct {
	Item  string
	Count int
}
