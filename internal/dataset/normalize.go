package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"vendite/internal/core"
)

// Required columns, matched case- and whitespace-insensitively.
var requiredColumns = []string{
	"order_date",
	"order_id",
	"customer_id",
	"category",
	"region",
	"payment_method",
	"quantity",
	"price",
	"discount",
}

// SchemaError is the only failure that crosses the load boundary: a required
// column is missing, or an order_date cell cannot be parsed. Every other bad
// value is silently coerced to a default.
type SchemaError struct {
	Column string
	Row    int // 1-based data row for cell failures, 0 for missing columns
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("schema error: column %q row %d: %s", e.Column, e.Row, e.Reason)
	}
	return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
}

// Date layouts tried in order. No single format is assumed for the input.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// Normalize maps a raw table onto typed orders. Column names are trimmed and
// lower-cased before matching; a missing required column or an unparseable
// order_date fails the whole load with a *SchemaError. Bad quantity, price
// or discount cells substitute 0 instead, so the row count is preserved.
func Normalize(raw RawTable) ([]core.Order, error) {
	idx := make(map[string]int, len(raw.Columns))
	for i, name := range raw.Columns {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &SchemaError{Column: col, Reason: "required column missing"}
		}
	}

	orders := make([]core.Order, 0, len(raw.Rows))
	for n, row := range raw.Rows {
		date, err := parseDate(cell(row, idx["order_date"]))
		if err != nil {
			return nil, &SchemaError{Column: "order_date", Row: n + 1, Reason: err.Error()}
		}
		orders = append(orders, core.Order{
			OrderID:       strings.TrimSpace(cell(row, idx["order_id"])),
			CustomerID:    strings.TrimSpace(cell(row, idx["customer_id"])),
			Category:      strings.TrimSpace(cell(row, idx["category"])),
			Region:        strings.TrimSpace(cell(row, idx["region"])),
			PaymentMethod: strings.TrimSpace(cell(row, idx["payment_method"])),
			Quantity:      coerceInt(cell(row, idx["quantity"])),
			Price:         coerceFloat(cell(row, idx["price"])),
			Discount:      coerceFloat(cell(row, idx["discount"])),
			OrderDate:     date,
		})
	}
	return orders, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// coerceFloat parses a floating point cell, substituting 0.0 on failure or
// when the cell is empty.
func coerceFloat(s string) float64 {
	f, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil {
		return 0.0
	}
	return f
}

// coerceInt parses an integer cell. Fractional values truncate toward zero;
// failures and empty cells substitute 0. Negative quantities pass through,
// they represent returns.
func coerceInt(s string) int {
	f, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return int(f)
}

func parseDate(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.DateOf(t), nil
		}
	}
	return core.Date{}, fmt.Errorf("unparseable date %q", s)
}
