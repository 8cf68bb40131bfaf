package mining

import (
	"context"
	"log/slog"
	"slices"
)

// BuildLattice runs the level-wise Apriori search.
//
// Level 1 candidates are the distinct items of all transactions. Each level is scanned,
// its frequent sets kept, and the next level generated from them, until a level yields
// nothing frequent. That empty level is not part of the returned lattice.
// The returned table holds the support of every candidate scanned on the way.
//
// A nil scanner defaults to a SubsetScanner over transactions. The context is checked
// between levels; a cancelled run returns no partial lattice.
func BuildLattice(ctx context.Context, transactions []Transaction, minSupport float64, scanner Scanner) (Lattice, SupportTable, error) {
	supports := NewSupportTable()
	if len(transactions) == 0 {
		return Lattice{}, supports, nil
	}
	if scanner == nil {
		scanner = NewSubsetScanner(transactions)
	}

	var lattice Lattice
	candidates := singletons(transactions)
	for k := 1; len(candidates) > 0; k++ {
		if err := ctx.Err(); err != nil {
			return nil, SupportTable{}, err
		}

		frequent, scanned := scanner.Scan(candidates, minSupport)
		supports.Merge(scanned)

		slog.Debug("Scanned lattice level",
			"size", k,
			"candidates", len(candidates),
			"frequent", len(frequent))

		if len(frequent) == 0 {
			break
		}
		lattice = append(lattice, Level(frequent))
		candidates = GenerateCandidates(frequent, k+1)
	}

	if lattice == nil {
		lattice = Lattice{}
	}
	return lattice, supports, nil
}

// singletons returns one single-item candidate per distinct item, in canonical order.
func singletons(transactions []Transaction) []Itemset {
	seen := make(map[Item]struct{})
	var items []Item
	for _, txn := range transactions {
		for _, item := range txn.items {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			items = append(items, item)
		}
	}
	slices.Sort(items)

	out := make([]Itemset, len(items))
	for i, item := range items {
		out[i] = fromSorted([]Item{item})
	}
	return out
}

// FilterByLength keeps only itemsets whose size lies in [minLen, maxLen].
// Level structure is preserved, so empty levels may remain.
func FilterByLength(l Lattice, minLen, maxLen int) Lattice {
	out := make(Lattice, len(l))
	for i, level := range l {
		filtered := Level{}
		for _, set := range level {
			if set.Len() >= minLen && set.Len() <= maxLen {
				filtered = append(filtered, set)
			}
		}
		out[i] = filtered
	}
	return out
}
