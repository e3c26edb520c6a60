package analytics

import (
	"math"
	"sort"

	"vendite/internal/core"
)

// ColumnStats are the summary statistics of one numeric column: count, mean,
// sample standard deviation, min, quartiles and max. Every statistic except
// Count is NaN on a zero-row view, and Std additionally needs two rows.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Description is the descriptive-analysis block: shape, columns, per-column
// missing counts and numeric summaries.
type Description struct {
	RowCount int
	Columns  []string
	Missing  map[string]int
	Numeric  []ColumnStats
}

var datasetColumns = []string{
	"order_id", "customer_id", "category", "region", "payment_method",
	"quantity", "price", "discount", "order_date",
	"sales", "order_month", "order_week", "order_day",
}

// Describe computes the descriptive block for the view. Coerced numeric
// columns and dates are never missing; for identifier and categorical
// columns an empty string counts as missing.
func Describe(v View) Description {
	d := Description{
		RowCount: len(v.Orders),
		Columns:  datasetColumns,
		Missing:  make(map[string]int, len(datasetColumns)),
	}
	for _, col := range datasetColumns {
		d.Missing[col] = 0
	}
	for _, o := range v.Orders {
		for col, val := range map[string]string{
			"order_id":       o.OrderID,
			"customer_id":    o.CustomerID,
			"category":       o.Category,
			"region":         o.Region,
			"payment_method": o.PaymentMethod,
		} {
			if val == "" {
				d.Missing[col]++
			}
		}
	}

	d.Numeric = []ColumnStats{
		columnStats("quantity", v, func(o core.Order) float64 { return float64(o.Quantity) }),
		columnStats("price", v, func(o core.Order) float64 { return o.Price }),
		columnStats("discount", v, func(o core.Order) float64 { return o.Discount }),
		columnStats("sales", v, func(o core.Order) float64 { return o.Sales }),
	}
	return d
}

func columnStats(name string, v View, value func(core.Order) float64) ColumnStats {
	values := make([]float64, len(v.Orders))
	for i, o := range v.Orders {
		values[i] = value(o)
	}
	stats := ColumnStats{
		Column: name,
		Count:  len(values),
		Mean:   math.NaN(),
		Std:    math.NaN(),
		Min:    math.NaN(),
		Q25:    math.NaN(),
		Median: math.NaN(),
		Q75:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(values) == 0 {
		return stats
	}

	var sum float64
	for _, x := range values {
		sum += x
	}
	stats.Mean = sum / float64(len(values))

	if len(values) >= 2 {
		var sq float64
		for _, x := range values {
			diff := x - stats.Mean
			sq += diff * diff
		}
		stats.Std = math.Sqrt(sq / float64(len(values)-1))
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	stats.Q25 = quantile(sorted, 0.25)
	stats.Median = quantile(sorted, 0.5)
	stats.Q75 = quantile(sorted, 0.75)
	return stats
}

// quantile interpolates linearly between the two nearest ranks, the same
// scheme standard describe output uses.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
