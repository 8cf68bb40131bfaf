package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasket_AddItem(t *testing.T) {
	var b Basket
	b.AddItem("whole milk")
	b.AddItem("  yogurt ")
	b.AddItem("whole milk")
	b.AddItem("   ")

	assert.Equal(t, []string{"whole milk", "yogurt"}, b.Items)
}

func TestBasket_GenerateHash(t *testing.T) {
	date := time.Date(2015, 7, 21, 0, 0, 0, 0, time.UTC)
	base := Basket{Customer: "1808", Date: date, Source: SourceCSV, Items: []string{"tropical fruit", "whole milk"}}

	tests := []struct {
		name   string
		mutate func(*Basket)
		same   bool
	}{
		{name: "item order ignored", mutate: func(b *Basket) { b.Items = []string{"whole milk", "tropical fruit"} }, same: true},
		{name: "ID ignored", mutate: func(b *Basket) { b.ID = "other" }, same: true},
		{name: "time of day ignored", mutate: func(b *Basket) { b.Date = date.Add(5 * time.Hour) }, same: true},
		{name: "different customer", mutate: func(b *Basket) { b.Customer = "1809" }},
		{name: "different day", mutate: func(b *Basket) { b.Date = date.AddDate(0, 0, 1) }},
		{name: "different source", mutate: func(b *Basket) { b.Source = SourceOFX }},
		{name: "extra item", mutate: func(b *Basket) { b.Items = append(b.Items, "soda") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			other.Items = append([]string(nil), base.Items...)
			tt.mutate(&other)

			if tt.same {
				assert.Equal(t, base.GenerateHash(), other.GenerateHash())
			} else {
				assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
			}
			assert.Equal(t, []string{"tropical fruit", "whole milk"}, base.Items, "hashing does not reorder items")
		})
	}
}

func TestAssociationRule(t *testing.T) {
	r := AssociationRule{
		Antecedent: []string{"rolls/buns", "whole milk"},
		Consequent: []string{"yogurt"},
	}

	assert.Equal(t, "{rolls/buns, whole milk} -> {yogurt}", r.String())
	assert.True(t, r.Mentions("MILK"))
	assert.True(t, r.Mentions("yog"))
	assert.False(t, r.Mentions("soda"))
	assert.Equal(t, 2, FrequentItemset{Items: r.Antecedent}.Size())
}
