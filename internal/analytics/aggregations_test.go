package analytics

import (
	"math"
	"testing"

	"vendite/internal/core"
)

func catOrder(orderID, customerID, category, region, payment string, qty int, price, discount float64) core.Order {
	o := order(orderID, customerID, qty, price, discount, core.NewDate(2024, 1, 10))
	o.Category = category
	o.Region = region
	o.PaymentMethod = payment
	return o
}

func TestRevenueHeatmapIsDense(t *testing.T) {
	v := viewOf(
		catOrder("O1", "C1", "Electronics", "North", "Card", 1, 10.0, 0.0),
		catOrder("O2", "C2", "Clothing", "South", "Card", 1, 5.0, 0.0),
		catOrder("O3", "C3", "Electronics", "North", "Card", 1, 2.0, 0.0),
	)
	h := RevenueHeatmap(v)

	if len(h.Regions) != 2 || h.Regions[0] != "North" || h.Regions[1] != "South" {
		t.Fatalf("regions: %v", h.Regions)
	}
	if len(h.Categories) != 2 || h.Categories[0] != "Clothing" || h.Categories[1] != "Electronics" {
		t.Fatalf("categories: %v", h.Categories)
	}
	// North x Clothing was never observed and must be 0, not absent.
	if h.Cells[0][0] != 0.0 {
		t.Fatalf("unobserved cell: got %v", h.Cells[0][0])
	}
	if h.Cells[0][1] != 12.0 {
		t.Fatalf("North x Electronics: got %v", h.Cells[0][1])
	}
	if h.Cells[1][0] != 5.0 {
		t.Fatalf("South x Clothing: got %v", h.Cells[1][0])
	}
}

func TestTopCustomers(t *testing.T) {
	v := viewOf(
		order("O1", "C1", 1, 10.0, 0.0, core.NewDate(2024, 1, 1)),
		order("O2", "C2", 1, 30.0, 0.0, core.NewDate(2024, 1, 2)),
		order("O3", "C1", 1, 5.0, 0.0, core.NewDate(2024, 1, 3)),
		order("O4", "C3", 1, 15.0, 0.0, core.NewDate(2024, 1, 4)),
	)
	ranked := TopCustomers(v, 2)

	if len(ranked) != 2 {
		t.Fatalf("expected 2, got %d", len(ranked))
	}
	if ranked[0].CustomerID != "C2" || ranked[0].Revenue != 30.0 {
		t.Fatalf("first: %+v", ranked[0])
	}
	if ranked[1].CustomerID != "C1" || ranked[1].Revenue != 15.0 {
		t.Fatalf("second: %+v", ranked[1])
	}
}

func TestTopCustomersStableTies(t *testing.T) {
	v := viewOf(
		order("O1", "C2", 1, 10.0, 0.0, core.NewDate(2024, 1, 1)),
		order("O2", "C1", 1, 10.0, 0.0, core.NewDate(2024, 1, 2)),
	)
	ranked := TopCustomers(v, TopCustomerLimit)

	// Equal revenue keeps first-seen order.
	if ranked[0].CustomerID != "C2" || ranked[1].CustomerID != "C1" {
		t.Fatalf("tie order: %+v", ranked)
	}
}

func TestCategorySummary(t *testing.T) {
	v := viewOf(
		catOrder("O1", "C1", "Electronics", "North", "Card", 2, 10.0, 0.0), // 20
		catOrder("O1", "C1", "Electronics", "North", "Card", 1, 20.0, 0.5), // 10
		catOrder("O2", "C2", "Clothing", "North", "Card", 1, 8.0, 0.0),     // 8
	)
	stats := CategorySummary(v)

	if len(stats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats))
	}
	e := stats[0]
	if e.Category != "Electronics" || e.TotalRevenue != 30.0 {
		t.Fatalf("first: %+v", e)
	}
	if math.Abs(e.AvgPrice-15.0) > 1e-9 || math.Abs(e.AvgDiscount-0.25) > 1e-9 {
		t.Fatalf("averages: %+v", e)
	}
	if e.TotalQuantity != 3 || e.Orders != 1 {
		t.Fatalf("quantity/orders: %+v", e)
	}
	if stats[1].Category != "Clothing" {
		t.Fatalf("second: %+v", stats[1])
	}
}

func TestPaymentMethodShare(t *testing.T) {
	v := viewOf(
		catOrder("O1", "C1", "Electronics", "North", "Card", 1, 30.0, 0.0),
		catOrder("O2", "C2", "Electronics", "North", "Cash", 1, 10.0, 0.0),
	)
	shares := PaymentMethodShare(v)

	if len(shares) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(shares))
	}
	if shares[0].Method != "Card" || math.Abs(shares[0].Share-0.75) > 1e-9 {
		t.Fatalf("card: %+v", shares[0])
	}
	var sum float64
	for _, s := range shares {
		sum += s.Share
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("shares must sum to 1, got %v", sum)
	}
}

func TestPaymentMethodShareZeroTotal(t *testing.T) {
	v := viewOf(catOrder("O1", "C1", "Electronics", "North", "Card", 0, 10.0, 0.0))
	shares := PaymentMethodShare(v)

	if len(shares) != 1 || shares[0].Share != 0.0 {
		t.Fatalf("zero-revenue share must be 0: %+v", shares)
	}
}
