// Package analytics holds the aggregation library: independent, pure
// functions from a filtered view of the canonical dataset to typed result
// tables. None of them mutate shared state; all of them return well-defined
// empty, zero or NaN results on a zero-row view.
package analytics

import (
	"vendite/internal/core"
	"vendite/internal/dataset"
)

// View is the filtered row subset every aggregation consumes. Row order is
// the canonical dataset's row order.
type View struct {
	Orders []core.Order
}

// Filter evaluates the spec against the canonical dataset and returns the
// matching subset. The dataset itself is never modified; an empty result is
// a valid view, not an error.
func Filter(ds *dataset.Dataset, spec core.FilterSpec) View {
	var matched []core.Order
	for _, o := range ds.Orders {
		if spec.Matches(o) {
			matched = append(matched, o)
		}
	}
	return View{Orders: matched}
}

// Empty reports whether the view has no rows.
func (v View) Empty() bool {
	return len(v.Orders) == 0
}
