package mining

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Scanner counts candidate support over a fixed transaction list.
//
// Scan returns the candidates whose support is at least minSupport, in canonical order,
// and a table holding the support of every candidate, frequent or not.
type Scanner interface {
	Scan(candidates []Itemset, minSupport float64) ([]Itemset, SupportTable)
}

// SubsetScanner tests every candidate against every transaction.
// Cost per call is O(|transactions| × |candidates|).
type SubsetScanner struct {
	transactions []Transaction
}

// NewSubsetScanner binds a scanner to transactions.
func NewSubsetScanner(transactions []Transaction) *SubsetScanner {
	return &SubsetScanner{transactions: transactions}
}

// Scan implements Scanner.
func (s *SubsetScanner) Scan(candidates []Itemset, minSupport float64) ([]Itemset, SupportTable) {
	counts := make([]int, len(candidates))
	for _, txn := range s.transactions {
		for i, candidate := range candidates {
			if candidate.IsSubsetOf(txn) {
				counts[i]++
			}
		}
	}
	return tally(candidates, counts, len(s.transactions), minSupport)
}

// BitmapScanner keeps one roaring bitmap of transaction positions per item and
// counts a candidate as the cardinality of the intersection of its items' bitmaps.
// Counts are exact and equal to SubsetScanner's.
type BitmapScanner struct {
	tidLists map[Item]*roaring.Bitmap
	total    int
}

// NewBitmapScanner indexes transactions by item.
func NewBitmapScanner(transactions []Transaction) *BitmapScanner {
	tidLists := make(map[Item]*roaring.Bitmap)
	for pos, txn := range transactions {
		for _, item := range txn.items {
			bm, ok := tidLists[item]
			if !ok {
				bm = roaring.New()
				tidLists[item] = bm
			}
			bm.Add(uint32(pos)) // #nosec G115 -- positions fit in uint32 for any loadable dataset
		}
	}
	for _, bm := range tidLists {
		bm.RunOptimize()
	}
	return &BitmapScanner{tidLists: tidLists, total: len(transactions)}
}

// Scan implements Scanner.
func (s *BitmapScanner) Scan(candidates []Itemset, minSupport float64) ([]Itemset, SupportTable) {
	counts := make([]int, len(candidates))
	for i, candidate := range candidates {
		counts[i] = s.count(candidate)
	}
	return tally(candidates, counts, s.total, minSupport)
}

func (s *BitmapScanner) count(candidate Itemset) int {
	if candidate.Len() == 0 {
		return s.total
	}
	bitmaps := make([]*roaring.Bitmap, 0, candidate.Len())
	for _, item := range candidate.items {
		bm, ok := s.tidLists[item]
		if !ok {
			return 0
		}
		bitmaps = append(bitmaps, bm)
	}
	if len(bitmaps) == 1 {
		return int(bitmaps[0].GetCardinality()) // #nosec G115
	}
	return int(roaring.FastAnd(bitmaps...).GetCardinality()) // #nosec G115
}

// tally converts raw counts to supports and splits out the frequent candidates.
func tally(candidates []Itemset, counts []int, total int, minSupport float64) ([]Itemset, SupportTable) {
	table := NewSupportTable()
	if total == 0 {
		return nil, table
	}
	var frequent []Itemset
	for i, candidate := range candidates {
		support := float64(counts[i]) / float64(total)
		table.Set(candidate, support)
		if support >= minSupport {
			frequent = append(frequent, candidate)
		}
	}
	sortLevel(frequent)
	return frequent, table
}
