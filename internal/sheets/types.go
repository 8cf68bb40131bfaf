package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/basket/internal/model"
	"github.com/Veraticus/basket/internal/service"
	"github.com/shopspring/decimal"
)

// RunSummary is the header block of an exported run.
type RunSummary struct {
	CreatedAt     time.Time
	RunID         string
	Mode          string
	Counting      string
	MinSupport    decimal.Decimal
	MinConfidence decimal.Decimal
	MinLift       decimal.Decimal
	Lengths       string // e.g. "2-3"
	Transactions  int
	Itemsets      int
	Rules         int
}

// RuleRow represents a single row in the rules section.
type RuleRow struct {
	Antecedent string
	Consequent string
	Support    decimal.Decimal
	Confidence decimal.Decimal
	Lift       decimal.Decimal
}

// ItemsetRow represents a single row in the itemsets section.
type ItemsetRow struct {
	Items   string
	Size    int
	Support decimal.Decimal
}

// TabData holds everything written for one run.
type TabData struct {
	Summary  RunSummary
	Rules    []RuleRow
	Itemsets []ItemsetRow
}

// round converts a metric to a decimal with the given number of places.
func round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

func joinItems(items []string) string {
	return strings.Join(items, ", ")
}

// NewTabData converts a stored run into rows, rounding every metric to places.
func NewTabData(report *service.RunReport, places int32) TabData {
	run := report.Run
	data := TabData{
		Summary: RunSummary{
			CreatedAt:     run.CreatedAt,
			RunID:         run.ID,
			Mode:          run.Mode,
			Counting:      run.Counting,
			MinSupport:    round(run.MinSupport, places),
			MinConfidence: round(run.MinConfidence, places),
			MinLift:       round(run.MinLift, places),
			Lengths:       lengthRange(run),
			Transactions:  run.TransactionCount,
			Itemsets:      len(report.Itemsets),
			Rules:         len(report.Rules),
		},
		Rules:    make([]RuleRow, 0, len(report.Rules)),
		Itemsets: make([]ItemsetRow, 0, len(report.Itemsets)),
	}

	for _, r := range report.Rules {
		data.Rules = append(data.Rules, RuleRow{
			Antecedent: joinItems(r.Antecedent),
			Consequent: joinItems(r.Consequent),
			Support:    round(r.Support, places),
			Confidence: round(r.Confidence, places),
			Lift:       round(r.Lift, places),
		})
	}

	for _, set := range report.Itemsets {
		data.Itemsets = append(data.Itemsets, ItemsetRow{
			Items:   joinItems(set.Items),
			Size:    set.Size(),
			Support: round(set.Support, places),
		})
	}

	return data
}

func lengthRange(run *model.MiningRun) string {
	if run.MinLength == run.MaxLength {
		return strconv.Itoa(run.MinLength)
	}
	return fmt.Sprintf("%d-%d", run.MinLength, run.MaxLength)
}
