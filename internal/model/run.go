package model

import (
	"fmt"
	"strings"
	"time"
)

// MiningRun records the thresholds and outcome of one completed mining run.
type MiningRun struct {
	CreatedAt        time.Time
	ID               string
	Mode             string
	Counting         string
	MinSupport       float64
	MinConfidence    float64
	MinLift          float64
	Duration         time.Duration
	MinLength        int
	MaxLength        int
	TransactionCount int
	ItemsetCount     int
	RuleCount        int
}

// FrequentItemset is a stored frequent itemset with its support.
type FrequentItemset struct {
	Items   []string
	Support float64
}

// Size returns the number of items in the set.
func (f FrequentItemset) Size() int {
	return len(f.Items)
}

// AssociationRule is a stored antecedent → consequent rule.
type AssociationRule struct {
	Antecedent []string
	Consequent []string
	Support    float64
	Confidence float64
	Lift       float64
}

// String renders the rule as "{a, b} -> {c}".
func (r AssociationRule) String() string {
	return fmt.Sprintf("{%s} -> {%s}", strings.Join(r.Antecedent, ", "), strings.Join(r.Consequent, ", "))
}

// Mentions reports whether item appears on either side of the rule.
// The comparison is case-insensitive and matches substrings.
func (r AssociationRule) Mentions(item string) bool {
	needle := strings.ToLower(item)
	for _, side := range [][]string{r.Antecedent, r.Consequent} {
		for _, it := range side {
			if strings.Contains(strings.ToLower(it), needle) {
				return true
			}
		}
	}
	return false
}
