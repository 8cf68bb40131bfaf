package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/basket/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRules() []model.AssociationRule {
	return []model.AssociationRule{
		{Antecedent: []string{"milk"}, Consequent: []string{"bread"}, Support: 0.5, Confidence: 0.6667, Lift: 0.8889},
		{Antecedent: []string{"eggs"}, Consequent: []string{"bread"}, Support: 0.5, Confidence: 1, Lift: 1.3333},
		{Antecedent: []string{"bread"}, Consequent: []string{"eggs"}, Support: 0.5, Confidence: 0.6667, Lift: 1.3333},
		{Antecedent: []string{"bread"}, Consequent: []string{"milk"}, Support: 0.25, Confidence: 0.6667, Lift: 0.8889},
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{input: "", want: SortByLift},
		{input: "lift", want: SortByLift},
		{input: " Confidence ", want: SortByConfidence},
		{input: "SUPPORT", want: SortBySupport},
		{input: "leverage", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownSortKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortKey_Next(t *testing.T) {
	assert.Equal(t, SortByConfidence, SortByLift.Next())
	assert.Equal(t, SortBySupport, SortByConfidence.Next())
	assert.Equal(t, SortByLift, SortBySupport.Next())
}

func TestSortRules(t *testing.T) {
	rules := sampleRules()

	tests := []struct {
		key  SortKey
		want []string
	}{
		{key: SortByLift, want: []string{"{bread} -> {eggs}", "{eggs} -> {bread}", "{bread} -> {milk}", "{milk} -> {bread}"}},
		{key: SortByConfidence, want: []string{"{eggs} -> {bread}", "{bread} -> {eggs}", "{bread} -> {milk}", "{milk} -> {bread}"}},
		{key: SortBySupport, want: []string{"{bread} -> {eggs}", "{eggs} -> {bread}", "{milk} -> {bread}", "{bread} -> {milk}"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			sorted := SortRules(rules, tt.key)
			got := make([]string, len(sorted))
			for i, r := range sorted {
				got[i] = r.String()
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "{milk} -> {bread}", rules[0].String(), "input is not reordered")
}

func TestRenderRules(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderRules(&buf, nil, RuleTableOptions{}))
		assert.Equal(t, "No rules generated.\n", buf.String())
	})

	t.Run("all rules", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderRules(&buf, sampleRules(), RuleTableOptions{SortBy: SortByLift}))

		out := buf.String()
		assert.Contains(t, out, "Antecedent")
		assert.Contains(t, out, "{eggs}")
		assert.Contains(t, out, "1.3333")
		assert.NotContains(t, out, "Showing")
	})

	t.Run("top", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderRules(&buf, sampleRules(), RuleTableOptions{SortBy: SortByConfidence, Top: 1}))

		out := buf.String()
		assert.Contains(t, out, "1.0000")
		assert.NotContains(t, out, "0.6667")
		assert.Contains(t, out, "Showing 1 of 4 rules")
	})
}

func TestRenderItemsets(t *testing.T) {
	itemsets := []model.FrequentItemset{
		{Items: []string{"bread"}, Support: 0.75},
		{Items: []string{"milk"}, Support: 0.75},
		{Items: []string{"bread", "milk"}, Support: 0.5},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderItemsets(&buf, itemsets, false))
	assert.Equal(t, "Length 1: 2 itemsets\nLength 2: 1 itemsets\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderItemsets(&buf, itemsets, true))
	assert.Contains(t, buf.String(), "{bread, milk}  0.5000")

	buf.Reset()
	require.NoError(t, RenderItemsets(&buf, nil, false))
	assert.Equal(t, "No frequent itemsets.\n", buf.String())
}

func TestRenderRunSummary(t *testing.T) {
	run := &model.MiningRun{
		ID:               "run-1",
		CreatedAt:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Mode:             "uniform",
		Counting:         "bitmap",
		MinSupport:       0.0008,
		MinConfidence:    0.0008,
		MinLift:          1,
		MinLength:        2,
		MaxLength:        3,
		TransactionCount: 14963,
		ItemsetCount:     900,
		RuleCount:        12,
		Duration:         1234567 * time.Microsecond,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderRunSummary(&buf, run))

	out := buf.String()
	assert.Contains(t, out, FolderIcon+" Run run-1")
	assert.Contains(t, out, "╭", "summary is boxed")
	assert.Contains(t, out, "uniform (bitmap counting)")
	assert.Contains(t, out, "Itemset length: 2-3")
	assert.Contains(t, out, "Min support:    0.0008")
	assert.Contains(t, out, "Transactions:   14963")
	assert.Contains(t, out, "Duration:       1.235s")

	buf.Reset()
	require.NoError(t, RenderRunSummary(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestRenderRunList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRunList(&buf, nil))
	assert.Contains(t, buf.String(), "No mining runs found")

	buf.Reset()
	runs := []model.MiningRun{
		{ID: "run-b", CreatedAt: time.Now(), Mode: "classic", MinSupport: 0.5, TransactionCount: 4, RuleCount: 2},
		{ID: "run-a", CreatedAt: time.Now().Add(-time.Hour), Mode: "uniform", MinSupport: 0.25, TransactionCount: 4, RuleCount: 7},
	}
	require.NoError(t, RenderRunList(&buf, runs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "run-b")
	assert.Contains(t, lines[1], "classic")
	assert.Contains(t, lines[2], "run-a")
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	err := RenderStats(&buf, Stats{
		Baskets:       4,
		DistinctItems: 3,
		TopItems:      []model.ItemFrequency{{Item: "bread", Count: 3}, {Item: "milk", Count: 3}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, ChartIcon+" Baskets")
	assert.Contains(t, out, "╰", "counts are boxed")
	assert.Contains(t, out, "Baskets:        4")
	assert.Contains(t, out, "Distinct items: 3")
	assert.Contains(t, out, "0.7500")

	buf.Reset()
	require.NoError(t, RenderStats(&buf, Stats{}))
	assert.NotContains(t, buf.String(), "Item")
}

func TestRenderBox(t *testing.T) {
	out := RenderBox(BasketIcon, "Title", "line one\nline two")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5, "top border, title, two content lines, bottom border")
	assert.Contains(t, lines[1], BasketIcon+" Title")
	assert.Contains(t, lines[2], "line one")
	assert.Contains(t, lines[3], "line two")
}
