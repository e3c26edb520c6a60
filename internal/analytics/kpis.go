package analytics

import "math"

// KPIs are the headline scalar metrics for a filtered view.
//
// AverageOrderValue is NaN on a view with zero orders; that sentinel is part
// of the contract and must survive to the caller. RepeatCustomerRate instead
// degrades to 0 on an empty view because its denominator is floored at 1.
type KPIs struct {
	TotalOrders        int
	TotalRevenue       float64
	AverageOrderValue  float64
	UniqueCustomers    int
	RepeatCustomerRate float64
}

// ComputeKPIs derives the headline metrics in a single pass over the view.
func ComputeKPIs(v View) KPIs {
	var totalRevenue float64
	orderRevenue := map[string]float64{}
	customerOrders := map[string]map[string]bool{}

	for _, o := range v.Orders {
		totalRevenue += o.Sales
		orderRevenue[o.OrderID] += o.Sales
		orders := customerOrders[o.CustomerID]
		if orders == nil {
			orders = map[string]bool{}
			customerOrders[o.CustomerID] = orders
		}
		orders[o.OrderID] = true
	}

	aov := math.NaN()
	if len(orderRevenue) > 0 {
		var sum float64
		for _, rev := range orderRevenue {
			sum += rev
		}
		aov = sum / float64(len(orderRevenue))
	}

	repeat := 0
	for _, orders := range customerOrders {
		if len(orders) >= 2 {
			repeat++
		}
	}
	unique := len(customerOrders)
	rate := float64(repeat) / float64(max(unique, 1))

	return KPIs{
		TotalOrders:        len(orderRevenue),
		TotalRevenue:       totalRevenue,
		AverageOrderValue:  aov,
		UniqueCustomers:    unique,
		RepeatCustomerRate: rate,
	}
}
