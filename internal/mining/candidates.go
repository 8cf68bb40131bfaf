package mining

import "slices"

// join merges every pair of size-(k-1) sets sharing their first k-2 items into a size-k set
// and keeps the ones accepted by keep. A nil keep accepts everything.
//
// The same routine generates lattice candidates and grows rule consequents.
// Inputs must be pairwise distinct; Itemset is always sorted, so Prefix is canonical.
func join(sets []Itemset, k int, keep func(Itemset) bool) []Itemset {
	var out []Itemset
	for i := 0; i < len(sets); i++ {
		left := sets[i].Prefix(k - 2)
		for j := i + 1; j < len(sets); j++ {
			if !slices.Equal(left, sets[j].Prefix(k-2)) {
				continue
			}
			candidate := sets[i].Union(sets[j])
			if candidate.Len() != k {
				continue
			}
			if keep == nil || keep(candidate) {
				out = append(out, candidate)
			}
		}
	}
	return out
}

// GenerateCandidates joins frequent itemsets of size k-1 into candidates of size k.
func GenerateCandidates(level []Itemset, k int) []Itemset {
	if k < 2 {
		return nil
	}
	return join(level, k, nil)
}
