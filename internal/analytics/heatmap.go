package analytics

import "sort"

// Heatmap is a dense region-by-category cross-tabulation of summed sales.
// Every observed region and every observed category appears; combinations
// with no rows hold 0, never a gap.
type Heatmap struct {
	Regions    []string
	Categories []string
	Cells      [][]float64 // Cells[i][j] = revenue for Regions[i] x Categories[j]
}

// RevenueHeatmap pivots the view's sales by region and category. Keys are
// the values observed in the view, sorted ascending.
func RevenueHeatmap(v View) Heatmap {
	type key struct{ region, category string }
	sums := map[key]float64{}
	regions := map[string]bool{}
	categories := map[string]bool{}
	for _, o := range v.Orders {
		sums[key{o.Region, o.Category}] += o.Sales
		regions[o.Region] = true
		categories[o.Category] = true
	}

	h := Heatmap{
		Regions:    sortedStrings(regions),
		Categories: sortedStrings(categories),
	}
	h.Cells = make([][]float64, len(h.Regions))
	for i, region := range h.Regions {
		h.Cells[i] = make([]float64, len(h.Categories))
		for j, category := range h.Categories {
			h.Cells[i][j] = sums[key{region, category}]
		}
	}
	return h
}

func sortedStrings(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
