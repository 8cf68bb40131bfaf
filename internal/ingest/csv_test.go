package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/basket/internal/common"
	"github.com/Veraticus/basket/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groceriesCSV = `Member_number,Date,itemDescription
1808,21-07-2015,tropical fruit
2552,05-01-2015,whole milk
2300,19-09-2015,pip fruit
1808,21-07-2015,rolls/buns
1808,21-07-2015,tropical fruit
2552,05-01-2015,
1187,12-12-2015,other vegetables
1808,22-07-2015,soda
`

func TestCSVReader_Read(t *testing.T) {
	baskets, err := NewCSVReader().Read(context.Background(), strings.NewReader(groceriesCSV))
	require.NoError(t, err)
	require.Len(t, baskets, 5)

	// Ordered by date, then customer.
	ids := make([]string, len(baskets))
	for i, b := range baskets {
		ids[i] = b.ID
	}
	assert.Equal(t, []string{
		"csv-2552-20150105",
		"csv-1808-20150721",
		"csv-1808-20150722",
		"csv-2300-20150919",
		"csv-1187-20151212",
	}, ids)

	b := baskets[1]
	assert.Equal(t, "1808", b.Customer)
	assert.Equal(t, model.SourceCSV, b.Source)
	assert.Equal(t, time.Date(2015, 7, 21, 0, 0, 0, 0, time.UTC), b.Date)
	assert.Equal(t, []string{"tropical fruit", "rolls/buns"}, b.Items, "repeated item collapses")
	assert.NotEmpty(t, b.Hash)

	assert.Equal(t, []string{"whole milk"}, baskets[0].Items, "blank item row skipped")
}

func TestCSVReader_CustomLayout(t *testing.T) {
	input := "customer;day;product\nA;2024-03-01;tea\nA;2024-03-01;scones\n"
	reader := &CSVReader{
		CustomerColumn: "Customer",
		DateColumn:     "Day",
		ItemColumn:     "Product",
		DateFormat:     "2006-01-02",
	}

	// Semicolons leave one column, so the header lookup fails.
	_, err := reader.Read(context.Background(), strings.NewReader(input))
	require.ErrorIs(t, err, ErrMissingColumn)

	input = strings.ReplaceAll(input, ";", ",")
	baskets, err := reader.Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, baskets, 1)
	assert.Equal(t, []string{"tea", "scones"}, baskets[0].Items)
}

func TestCSVReader_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   string
	}{
		{name: "empty input", input: "", wantErr: ErrNoBaskets},
		{name: "header only", input: "Member_number,Date,itemDescription\n", wantErr: ErrNoBaskets},
		{name: "missing item column", input: "Member_number,Date\n1,01-01-2015\n", wantErr: ErrMissingColumn},
		{name: "bad date", input: "Member_number,Date,itemDescription\n1,2015/01/01,milk\n", wantErr: common.ErrMalformedInput},
		{name: "ragged row", input: "Member_number,Date,itemDescription\n1,01-01-2015\n", wantErr: common.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVReader().Read(context.Background(), strings.NewReader(tt.input))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCSVReader_ByteOrderMark(t *testing.T) {
	input := "\ufeffMember_number,Date,itemDescription\n7,01-02-2015,butter\n"
	baskets, err := NewCSVReader().Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, baskets, 1)
	assert.Equal(t, "csv-7-20150201", baskets[0].ID)
}
