package mining

import (
	"slices"
	"strings"
)

// Item is a single label in a basket, such as a product name.
// Items are ordered byte-wise; that order is the canonical order used by the join.
type Item = string

// keySep separates items inside an Itemset key. It cannot appear in CSV or OFX labels.
const keySep = "\x1f"

// Itemset is an immutable, duplicate-free set of items.
// Its items are always held in canonical (sorted) order.
type Itemset struct {
	key   string
	items []Item
}

// NewItemset builds an itemset from items in any order. Duplicates are collapsed.
func NewItemset(items ...Item) Itemset {
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return Itemset{items: sorted, key: strings.Join(sorted, keySep)}
}

// fromSorted wraps an already sorted, deduplicated slice without copying.
func fromSorted(items []Item) Itemset {
	return Itemset{items: items, key: strings.Join(items, keySep)}
}

// Len returns the number of items in the set.
func (s Itemset) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in canonical order.
func (s Itemset) Items() []Item {
	return slices.Clone(s.items)
}

// Key returns a stable identifier; two itemsets are equal iff their keys are equal.
func (s Itemset) Key() string {
	return s.key
}

// Equal reports whether both sets hold the same items.
func (s Itemset) Equal(other Itemset) bool {
	return s.key == other.key && len(s.items) == len(other.items)
}

// Contains reports whether item is a member of the set.
func (s Itemset) Contains(item Item) bool {
	_, found := slices.BinarySearch(s.items, item)
	return found
}

// IsSubsetOf reports whether every item of s is also in other.
func (s Itemset) IsSubsetOf(other Itemset) bool {
	if len(s.items) > len(other.items) {
		return false
	}
	// Both sides are sorted, so a single merge pass is enough.
	j := 0
	for _, item := range s.items {
		for j < len(other.items) && other.items[j] < item {
			j++
		}
		if j == len(other.items) || other.items[j] != item {
			return false
		}
		j++
	}
	return true
}

// Union returns s ∪ other.
func (s Itemset) Union(other Itemset) Itemset {
	out := make([]Item, 0, len(s.items)+len(other.items))
	i, j := 0, 0
	for i < len(s.items) && j < len(other.items) {
		switch {
		case s.items[i] < other.items[j]:
			out = append(out, s.items[i])
			i++
		case s.items[i] > other.items[j]:
			out = append(out, other.items[j])
			j++
		default:
			out = append(out, s.items[i])
			i++
			j++
		}
	}
	out = append(out, s.items[i:]...)
	out = append(out, other.items[j:]...)
	return fromSorted(out)
}

// Minus returns s − other.
func (s Itemset) Minus(other Itemset) Itemset {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if !other.Contains(item) {
			out = append(out, item)
		}
	}
	return fromSorted(out)
}

// Prefix returns the first n items in canonical order.
func (s Itemset) Prefix(n int) []Item {
	if n > len(s.items) {
		n = len(s.items)
	}
	if n < 0 {
		n = 0
	}
	return s.items[:n]
}

// String renders the set as {a, b, c}.
func (s Itemset) String() string {
	return "{" + strings.Join(s.items, ", ") + "}"
}

// Transaction is one purchase event. It is read-only input to the miner.
type Transaction = Itemset

// Level holds the frequent itemsets of one size.
type Level []Itemset

// Lattice is the sequence of frequent levels; index k holds itemsets of size k+1.
type Lattice []Level

// Len returns the total number of itemsets across all levels.
func (l Lattice) Len() int {
	n := 0
	for _, level := range l {
		n += len(level)
	}
	return n
}

// Contains reports whether set is a member of any level.
func (l Lattice) Contains(set Itemset) bool {
	idx := set.Len() - 1
	if idx < 0 || idx >= len(l) {
		return false
	}
	for _, candidate := range l[idx] {
		if candidate.Equal(set) {
			return true
		}
	}
	return false
}

// sortLevel puts a level in canonical key order so runs are reproducible.
func sortLevel(level []Itemset) {
	slices.SortFunc(level, func(a, b Itemset) int {
		return strings.Compare(a.key, b.key)
	})
}
