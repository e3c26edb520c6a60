package http

import (
	"net/url"
	"testing"

	"vendite/internal/core"
	"vendite/internal/dataset"
)

func parserDataset() *dataset.Dataset {
	return dataset.New(dataset.Derive([]core.Order{
		{OrderID: "O1", CustomerID: "C1", Category: "Electronics", Region: "North", PaymentMethod: "Card", Quantity: 1, Price: 10, OrderDate: core.NewDate(2024, 1, 5)},
		{OrderID: "O2", CustomerID: "C2", Category: "Clothing", Region: "South", PaymentMethod: "Cash", Quantity: 1, Price: 5, OrderDate: core.NewDate(2024, 3, 20)},
	}))
}

func TestParseFilterSpecDefaults(t *testing.T) {
	ds := parserDataset()
	spec, err := ParseFilterSpec(url.Values{}, ds)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !spec.Categories["Electronics"] || !spec.Categories["Clothing"] {
		t.Fatalf("categories must default to full domain: %v", spec.Categories)
	}
	if !spec.DateStart.Equal(core.NewDate(2024, 1, 5)) || !spec.DateEnd.Equal(core.NewDate(2024, 3, 20)) {
		t.Fatalf("range must default to observed: %s .. %s", spec.DateStart, spec.DateEnd)
	}
}

func TestParseFilterSpecSelections(t *testing.T) {
	ds := parserDataset()
	query := url.Values{
		"category":       {"Electronics"},
		"region":         {"North,South"},
		"payment_method": {"Card", "Cash"},
	}
	spec, err := ParseFilterSpec(query, ds)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if spec.Categories["Clothing"] {
		t.Fatal("explicit selection must replace the default domain")
	}
	if !spec.Regions["North"] || !spec.Regions["South"] {
		t.Fatalf("comma-separated values: %v", spec.Regions)
	}
	if !spec.PaymentMethods["Card"] || !spec.PaymentMethods["Cash"] {
		t.Fatalf("repeated parameters: %v", spec.PaymentMethods)
	}
}

func TestParseFilterSpecUnknownValueKept(t *testing.T) {
	spec, err := ParseFilterSpec(url.Values{"category": {"Toys"}}, parserDataset())
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !spec.Categories["Toys"] || len(spec.Categories) != 1 {
		t.Fatalf("unknown values are kept as-is: %v", spec.Categories)
	}
}

func TestParseFilterSpecDates(t *testing.T) {
	ds := parserDataset()
	spec, err := ParseFilterSpec(url.Values{"from": {"2024-02-01"}, "to": {"2024-02-29"}}, ds)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !spec.DateStart.Equal(core.NewDate(2024, 2, 1)) || !spec.DateEnd.Equal(core.NewDate(2024, 2, 29)) {
		t.Fatalf("range: %s .. %s", spec.DateStart, spec.DateEnd)
	}

	for _, bad := range []string{"02/01/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseFilterSpec(url.Values{"from": {bad}}, ds); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}
