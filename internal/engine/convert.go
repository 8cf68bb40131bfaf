package engine

import (
	"fmt"

	"github.com/Veraticus/basket/internal/mining"
	"github.com/Veraticus/basket/internal/model"
)

// ToTransactions converts stored baskets into mining transactions.
func ToTransactions(baskets []model.Basket) []mining.Transaction {
	out := make([]mining.Transaction, len(baskets))
	for i, b := range baskets {
		out[i] = mining.NewItemset(b.Items...)
	}
	return out
}

// FrequentItemsets flattens the result lattice, smallest level first.
func FrequentItemsets(result *mining.Result) ([]model.FrequentItemset, error) {
	out := make([]model.FrequentItemset, 0, result.Lattice.Len())
	for _, level := range result.Lattice {
		for _, set := range level {
			support, err := result.Supports.MustSupport(set)
			if err != nil {
				return nil, fmt.Errorf("frequent itemset %s: %w", set, err)
			}
			out = append(out, model.FrequentItemset{Items: set.Items(), Support: support})
		}
	}
	return out, nil
}

// AssociationRules converts mined rules into their stored form.
func AssociationRules(rules []mining.Rule) []model.AssociationRule {
	out := make([]model.AssociationRule, len(rules))
	for i, r := range rules {
		out[i] = model.AssociationRule{
			Antecedent: r.Antecedent.Items(),
			Consequent: r.Consequent.Items(),
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		}
	}
	return out
}
