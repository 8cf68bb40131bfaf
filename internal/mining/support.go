package mining

import "fmt"

type supportEntry struct {
	set     Itemset
	support float64
}

// SupportTable maps every itemset the scanner has seen to its support.
// It holds infrequent candidates too; rule scoring looks up arbitrary subsets.
type SupportTable struct {
	entries map[string]supportEntry
}

// NewSupportTable returns an empty table.
func NewSupportTable() SupportTable {
	return SupportTable{entries: make(map[string]supportEntry)}
}

// Set records the support of an itemset.
func (t SupportTable) Set(set Itemset, support float64) {
	t.entries[set.Key()] = supportEntry{set: set, support: support}
}

// Lookup returns the recorded support and whether the set was ever scanned.
func (t SupportTable) Lookup(set Itemset) (float64, bool) {
	e, ok := t.entries[set.Key()]
	return e.support, ok
}

// MustSupport returns the support of a set that is required to be present.
func (t SupportTable) MustSupport(set Itemset) (float64, error) {
	support, ok := t.Lookup(set)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingSupport, set)
	}
	return support, nil
}

// Merge copies every entry of other into t.
func (t SupportTable) Merge(other SupportTable) {
	for k, e := range other.entries {
		t.entries[k] = e
	}
}

// Len returns the number of recorded itemsets.
func (t SupportTable) Len() int {
	return len(t.entries)
}

// Each calls fn for every entry. Iteration order is unspecified.
func (t SupportTable) Each(fn func(set Itemset, support float64)) {
	for _, e := range t.entries {
		fn(e.set, e.support)
	}
}
