package analytics

import "sort"

// TopCustomerLimit is how many customers the ranking keeps.
const TopCustomerLimit = 20

// CustomerRevenue is one entry of the top-customer ranking.
type CustomerRevenue struct {
	CustomerID string
	Revenue    float64
}

// TopCustomers sums sales per customer and returns at most limit customers
// in descending revenue order. The sort is stable: customers with equal
// revenue keep the order in which they first appear in the view, and no
// other tie-break is defined.
func TopCustomers(v View, limit int) []CustomerRevenue {
	sums := map[string]float64{}
	var seen []string
	for _, o := range v.Orders {
		if _, ok := sums[o.CustomerID]; !ok {
			seen = append(seen, o.CustomerID)
		}
		sums[o.CustomerID] += o.Sales
	}

	ranked := make([]CustomerRevenue, 0, len(seen))
	for _, id := range seen {
		ranked = append(ranked, CustomerRevenue{CustomerID: id, Revenue: sums[id]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Revenue > ranked[j].Revenue })

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
