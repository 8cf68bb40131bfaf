package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/basket/internal/common"
	"github.com/Veraticus/basket/internal/model"
)

// Default CSV layout of a groceries purchase export.
const (
	DefaultCustomerColumn = "Member_number"
	DefaultDateColumn     = "Date"
	DefaultItemColumn     = "itemDescription"
	DefaultDateFormat     = "02-01-2006"
)

// CSVReader reads row-per-item exports and groups rows sharing a customer and date into one basket.
type CSVReader struct {
	CustomerColumn string
	DateColumn     string
	ItemColumn     string
	DateFormat     string
}

// NewCSVReader creates a reader for the default groceries layout.
func NewCSVReader() *CSVReader {
	return &CSVReader{
		CustomerColumn: DefaultCustomerColumn,
		DateColumn:     DefaultDateColumn,
		ItemColumn:     DefaultItemColumn,
		DateFormat:     DefaultDateFormat,
	}
}

var _ Reader = (*CSVReader)(nil)

// Read parses the export. Rows with a blank item are skipped; a malformed date fails the read.
func (c *CSVReader) Read(ctx context.Context, r io.Reader) ([]model.Basket, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoBaskets
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	customerIdx, err := columnIndex(header, c.CustomerColumn)
	if err != nil {
		return nil, err
	}
	dateIdx, err := columnIndex(header, c.DateColumn)
	if err != nil {
		return nil, err
	}
	itemIdx, err := columnIndex(header, c.ItemColumn)
	if err != nil {
		return nil, err
	}

	groups := newGrouper(model.SourceCSV, "csv")
	line := 1
	skipped := 0

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", common.ErrMalformedInput, line, err)
		}
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		customer := strings.TrimSpace(record[customerIdx])
		item := strings.TrimSpace(record[itemIdx])
		if customer == "" || item == "" {
			skipped++
			continue
		}

		date, err := time.Parse(c.DateFormat, strings.TrimSpace(record[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad date %q: %v", common.ErrMalformedInput, line, record[dateIdx], err)
		}

		groups.add(customer, date, item)
	}

	baskets := groups.result()
	slog.Debug("Parsed CSV export",
		"rows", line-1,
		"skipped", skipped,
		"baskets", len(baskets))

	if len(baskets) == 0 {
		return nil, ErrNoBaskets
	}
	return baskets, nil
}

// columnIndex finds name in header, ignoring case and surrounding space.
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrMissingColumn, name)
}
