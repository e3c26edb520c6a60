package analytics

import "sort"

// PaymentShare is one payment method's revenue and its share of the view's
// total. Shares sum to 1.0 over a non-empty view with non-zero revenue; when
// total revenue is 0 every share is 0.
type PaymentShare struct {
	Method  string
	Revenue float64
	Share   float64
}

// PaymentMethodShare sums sales per payment method, ascending by method
// name, and attaches each method's share of the total.
func PaymentMethodShare(v View) []PaymentShare {
	sums := map[string]float64{}
	var total float64
	for _, o := range v.Orders {
		sums[o.PaymentMethod] += o.Sales
		total += o.Sales
	}

	methods := make([]string, 0, len(sums))
	for m := range sums {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	shares := make([]PaymentShare, 0, len(methods))
	for _, m := range methods {
		share := 0.0
		if total != 0 {
			share = sums[m] / total
		}
		shares = append(shares, PaymentShare{Method: m, Revenue: sums[m], Share: share})
	}
	return shares
}
