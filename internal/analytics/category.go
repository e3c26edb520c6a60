package analytics

import "sort"

// CategoryStats summarizes one category's performance over the view.
type CategoryStats struct {
	Category      string
	TotalRevenue  float64
	AvgPrice      float64
	AvgDiscount   float64
	TotalQuantity int
	Orders        int // distinct order_id count
}

// CategorySummary aggregates per category and sorts descending by total
// revenue. Equal revenues keep ascending category-name order (stable sort
// over alphabetically ordered groups).
func CategorySummary(v View) []CategoryStats {
	type acc struct {
		revenue  float64
		price    float64
		discount float64
		quantity int
		rows     int
		orders   map[string]bool
	}
	groups := map[string]*acc{}
	for _, o := range v.Orders {
		g := groups[o.Category]
		if g == nil {
			g = &acc{orders: map[string]bool{}}
			groups[o.Category] = g
		}
		g.revenue += o.Sales
		g.price += o.Price
		g.discount += o.Discount
		g.quantity += o.Quantity
		g.rows++
		g.orders[o.OrderID] = true
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]CategoryStats, 0, len(names))
	for _, name := range names {
		g := groups[name]
		stats = append(stats, CategoryStats{
			Category:      name,
			TotalRevenue:  g.revenue,
			AvgPrice:      g.price / float64(g.rows),
			AvgDiscount:   g.discount / float64(g.rows),
			TotalQuantity: g.quantity,
			Orders:        len(g.orders),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalRevenue > stats[j].TotalRevenue })
	return stats
}
