package dataset

import (
	"math"
	"testing"

	"vendite/internal/core"
)

func TestDeriveSales(t *testing.T) {
	cases := []struct {
		name     string
		qty      int
		price    float64
		discount float64
		want     float64
	}{
		{"plain", 2, 10.0, 0.0, 20.0},
		{"discounted", 1, 10.0, 0.5, 5.0},
		{"full discount", 3, 7.0, 1.0, 0.0},
		{"negative quantity flows through", -2, 10.0, 0.0, -20.0},
		{"discount above one goes negative", 1, 10.0, 1.5, -5.0},
		{"zero price", 5, 0.0, 0.2, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Derive([]core.Order{{
				Quantity: tc.qty, Price: tc.price, Discount: tc.discount,
				OrderDate: core.NewDate(2024, 1, 1),
			}})
			if math.Abs(out[0].Sales-tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, out[0].Sales)
			}
		})
	}
}

func TestDeriveBuckets(t *testing.T) {
	out := Derive([]core.Order{{OrderDate: core.NewDate(2024, 3, 17)}}) // a Sunday
	o := out[0]
	if !o.OrderMonth.Equal(core.NewDate(2024, 3, 1)) {
		t.Fatalf("month bucket: got %s", o.OrderMonth)
	}
	if !o.OrderWeek.Equal(core.NewDate(2024, 3, 11)) {
		t.Fatalf("week bucket: got %s", o.OrderWeek)
	}
	if !o.OrderDay.Equal(core.NewDate(2024, 3, 17)) {
		t.Fatalf("day bucket: got %s", o.OrderDay)
	}
}

func TestDerivePreservesOrderAndInput(t *testing.T) {
	in := []core.Order{
		{OrderID: "A", Quantity: 1, Price: 1, OrderDate: core.NewDate(2024, 1, 2)},
		{OrderID: "B", Quantity: 2, Price: 2, OrderDate: core.NewDate(2024, 1, 1)},
	}
	out := Derive(in)
	if out[0].OrderID != "A" || out[1].OrderID != "B" {
		t.Fatal("row order must be preserved")
	}
	if in[0].Sales != 0 {
		t.Fatal("input slice must not be mutated")
	}
}

func TestDatasetDomainsAndRange(t *testing.T) {
	ds := New(Derive([]core.Order{
		{Category: "B", Region: "South", PaymentMethod: "Cash", OrderDate: core.NewDate(2024, 2, 1)},
		{Category: "A", Region: "North", PaymentMethod: "Card", OrderDate: core.NewDate(2024, 1, 5)},
		{Category: "A", Region: "South", PaymentMethod: "Card", OrderDate: core.NewDate(2024, 3, 9)},
	}))
	if got := ds.Categories; len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("categories: %v", got)
	}
	if !ds.DateMin.Equal(core.NewDate(2024, 1, 5)) || !ds.DateMax.Equal(core.NewDate(2024, 3, 9)) {
		t.Fatalf("range: %s .. %s", ds.DateMin, ds.DateMax)
	}

	f := ds.DefaultFilter()
	for _, o := range ds.Orders {
		if !f.Matches(o) {
			t.Fatalf("default filter must match every row: %+v", o)
		}
	}
}
