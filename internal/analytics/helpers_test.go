package analytics

import (
	"vendite/internal/core"
	"vendite/internal/dataset"
)

// viewOf derives the fields the normalizer's pipeline would and wraps the
// rows in a View.
func viewOf(orders ...core.Order) View {
	return View{Orders: dataset.Derive(orders)}
}

func newTestDataset(orders []core.Order) *dataset.Dataset {
	return dataset.New(dataset.Derive(orders))
}

func order(orderID, customerID string, qty int, price, discount float64, date core.Date) core.Order {
	return core.Order{
		OrderID:       orderID,
		CustomerID:    customerID,
		Category:      "Electronics",
		Region:        "North",
		PaymentMethod: "Card",
		Quantity:      qty,
		Price:         price,
		Discount:      discount,
		OrderDate:     date,
	}
}
