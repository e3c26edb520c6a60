package dataset

import "vendite/internal/core"

// Derive computes the derived fields for every normalized order:
//
//	sales       = quantity * price * (1 - discount)
//	order_month = first day of the order's month
//	order_week  = Monday of the order's week
//	order_day   = the order's calendar date
//
// Pure and order-preserving; the input slice is not modified. No clamping is
// applied: negative quantities (returns) and discounts outside [0,1] flow
// through the formula unchanged.
func Derive(orders []core.Order) []core.Order {
	out := make([]core.Order, len(orders))
	for i, o := range orders {
		o.Sales = float64(o.Quantity) * o.Price * (1 - o.Discount)
		o.OrderMonth = o.OrderDate.StartOfMonth()
		o.OrderWeek = o.OrderDate.StartOfWeek()
		o.OrderDay = o.OrderDate
		out[i] = o
	}
	return out
}
