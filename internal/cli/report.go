package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/basket/internal/model"
)

// ErrUnknownSortKey is returned when a rule sort key is not recognized.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKey selects the metric rules are ordered by.
type SortKey string

const (
	// SortByLift orders rules by lift.
	SortByLift SortKey = "lift"
	// SortByConfidence orders rules by confidence.
	SortByConfidence SortKey = "confidence"
	// SortBySupport orders rules by support.
	SortBySupport SortKey = "support"
)

// SortKeys lists the accepted sort keys in cycling order.
var SortKeys = []SortKey{SortByLift, SortByConfidence, SortBySupport}

// ParseSortKey converts user input into a SortKey. Empty input means lift.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return SortByLift, nil
	}
	if !slices.Contains(SortKeys, key) {
		return "", fmt.Errorf("%w: %q (want lift, confidence or support)", ErrUnknownSortKey, s)
	}
	return key, nil
}

// Next returns the key after k in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

func (k SortKey) metric(r model.AssociationRule) float64 {
	switch k {
	case SortByConfidence:
		return r.Confidence
	case SortBySupport:
		return r.Support
	default:
		return r.Lift
	}
}

// SortRules orders rules by key descending, breaking ties by rule text.
// The input slice is left untouched.
func SortRules(rules []model.AssociationRule, key SortKey) []model.AssociationRule {
	out := slices.Clone(rules)
	slices.SortStableFunc(out, func(a, b model.AssociationRule) int {
		ma, mb := key.metric(a), key.metric(b)
		switch {
		case ma > mb:
			return -1
		case ma < mb:
			return 1
		}
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// RuleTableOptions controls RenderRules.
type RuleTableOptions struct {
	SortBy SortKey
	// Top limits the number of rows; zero shows every rule.
	Top int
}

// RenderRules writes rules as an aligned table.
func RenderRules(w io.Writer, rules []model.AssociationRule, opts RuleTableOptions) error {
	if len(rules) == 0 {
		_, err := fmt.Fprintln(w, "No rules generated.")
		return err
	}

	sorted := SortRules(rules, opts.SortBy)
	if opts.Top > 0 && opts.Top < len(sorted) {
		sorted = sorted[:opts.Top]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("Antecedent"),
		TableHeaderStyle.Render("Consequent"),
		TableHeaderStyle.Render("Support"),
		TableHeaderStyle.Render("Confidence"),
		TableHeaderStyle.Render("Lift")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		SubtleStyle.Render(strings.Repeat("─", 20)),
		SubtleStyle.Render(strings.Repeat("─", 20)),
		SubtleStyle.Render(strings.Repeat("─", 8)),
		SubtleStyle.Render(strings.Repeat("─", 10)),
		SubtleStyle.Render(strings.Repeat("─", 6))); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, r := range sorted {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%s\n",
			formatSide(r.Antecedent),
			formatSide(r.Consequent),
			r.Support,
			r.Confidence,
			StyleMetric(r.Lift, 1, "%.4f")); err != nil {
			return fmt.Errorf("failed to write rule row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	if len(sorted) < len(rules) {
		_, err := fmt.Fprintf(w, "\n%s\n", InfoStyle.Render(fmt.Sprintf("Showing %d of %d rules", len(sorted), len(rules))))
		return err
	}
	return nil
}

// RenderItemsets writes a per-length summary of frequent itemsets.
// When verbose is set every itemset is listed under its length.
func RenderItemsets(w io.Writer, itemsets []model.FrequentItemset, verbose bool) error {
	if len(itemsets) == 0 {
		_, err := fmt.Fprintln(w, "No frequent itemsets.")
		return err
	}

	byLen := make(map[int][]model.FrequentItemset)
	maxLen := 0
	for _, set := range itemsets {
		byLen[set.Size()] = append(byLen[set.Size()], set)
		maxLen = max(maxLen, set.Size())
	}

	for k := 1; k <= maxLen; k++ {
		sets := byLen[k]
		if len(sets) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "Length %d: %d itemsets\n", k, len(sets)); err != nil {
			return err
		}
		if !verbose {
			continue
		}
		for _, set := range sets {
			if _, err := fmt.Fprintf(w, "  %s  %.4f\n", formatSide(set.Items), set.Support); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderRunSummary writes the thresholds and counts of a run in a box.
func RenderRunSummary(w io.Writer, run *model.MiningRun) error {
	if run == nil {
		return nil
	}
	lengths := fmt.Sprintf("%d", run.MinLength)
	if run.MaxLength != run.MinLength {
		lengths = fmt.Sprintf("%d-%d", run.MinLength, run.MaxLength)
	}

	lines := []string{
		fmt.Sprintf("Created:        %s", run.CreatedAt.Local().Format("2006-01-02 15:04")),
		fmt.Sprintf("Mode:           %s (%s counting)", run.Mode, run.Counting),
		fmt.Sprintf("Min support:    %g", run.MinSupport),
		fmt.Sprintf("Min confidence: %g", run.MinConfidence),
		fmt.Sprintf("Min lift:       %g", run.MinLift),
		fmt.Sprintf("Itemset length: %s", lengths),
		fmt.Sprintf("Transactions:   %d", run.TransactionCount),
		fmt.Sprintf("Itemsets:       %d", run.ItemsetCount),
		fmt.Sprintf("Rules:          %d", run.RuleCount),
		fmt.Sprintf("Duration:       %s", run.Duration.Round(time.Millisecond)),
	}
	_, err := fmt.Fprintln(w, RenderBox(FolderIcon, "Run "+run.ID, strings.Join(lines, "\n")))
	return err
}

// RenderRunList writes one row per stored run.
func RenderRunList(w io.Writer, runs []model.MiningRun) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, InfoStyle.Render("No mining runs found. Use 'basket mine' to create one."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Created"),
		TableHeaderStyle.Render("Mode"),
		TableHeaderStyle.Render("Support"),
		TableHeaderStyle.Render("Transactions"),
		TableHeaderStyle.Render("Rules")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, run := range runs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%d\t%d\n",
			run.ID,
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Mode,
			run.MinSupport,
			run.TransactionCount,
			run.RuleCount); err != nil {
			return fmt.Errorf("failed to write run row: %w", err)
		}
	}
	return tw.Flush()
}

// Stats summarizes the stored baskets.
type Stats struct {
	TopItems      []model.ItemFrequency
	Baskets       int
	DistinctItems int
}

// RenderStats writes basket counts in a box, followed by the most frequent items.
func RenderStats(w io.Writer, stats Stats) error {
	counts := fmt.Sprintf("Baskets:        %d\nDistinct items: %d", stats.Baskets, stats.DistinctItems)
	if _, err := fmt.Fprintln(w, RenderBox(ChartIcon, "Baskets", counts)); err != nil {
		return err
	}
	if len(stats.TopItems) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
		TableHeaderStyle.Render("Item"),
		TableHeaderStyle.Render("Baskets"),
		TableHeaderStyle.Render("Support")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, f := range stats.TopItems {
		support := 0.0
		if stats.Baskets > 0 {
			support = float64(f.Count) / float64(stats.Baskets)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.4f\n", f.Item, f.Count, support); err != nil {
			return fmt.Errorf("failed to write item row: %w", err)
		}
	}
	return tw.Flush()
}

func formatSide(items []string) string {
	return "{" + strings.Join(items, ", ") + "}"
}
