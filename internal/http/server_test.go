package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vendite/internal/dataset"
)

// tableSource serves a fixed raw table and counts reads.
type tableSource struct {
	table dataset.RawTable
	reads int
}

func (s *tableSource) Read(_ context.Context) (dataset.RawTable, error) {
	s.reads++
	return s.table, nil
}

func fixtureTable() dataset.RawTable {
	return dataset.RawTable{
		Columns: []string{
			"order_date", "order_id", "customer_id", "category", "region",
			"payment_method", "quantity", "price", "discount",
		},
		Rows: [][]string{
			{"2024-01-10", "O1", "C1", "Electronics", "North", "Card", "2", "10.0", "0"},
			{"2024-02-05", "O2", "C1", "Electronics", "North", "Card", "1", "10.0", "0.5"},
			{"2024-02-20", "O3", "C2", "Clothing", "South", "Cash", "1", "8.0", "0"},
		},
	}
}

func newTestServer(t *testing.T) (*Server, *tableSource) {
	t.Helper()
	src := &tableSource{table: fixtureTable()}
	store := dataset.NewStore(src)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	s := NewServer(":0", store, 8)
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s, src
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := get(t, s, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}

	empty := NewServer(":0", dataset.NewStore(&tableSource{}), 8)
	defer empty.Shutdown(context.Background())
	if rec := get(t, empty, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz before load: %d", rec.Code)
	}
	if rec := get(t, empty, "/api/kpis"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("kpis before load: %d", rec.Code)
	}
}

func TestKPIsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	var body struct {
		TotalOrders        int      `json:"total_orders"`
		TotalRevenue       float64  `json:"total_revenue"`
		AverageOrderValue  *float64 `json:"average_order_value"`
		UniqueCustomers    int      `json:"unique_customers"`
		RepeatCustomerRate float64  `json:"repeat_customer_rate"`
	}
	decode(t, get(t, s, "/api/kpis"), &body)

	if body.TotalOrders != 3 || body.UniqueCustomers != 2 {
		t.Fatalf("kpis: %+v", body)
	}
	if body.TotalRevenue != 33.0 {
		t.Fatalf("revenue: %v", body.TotalRevenue)
	}
	if body.AverageOrderValue == nil || *body.AverageOrderValue != 11.0 {
		t.Fatalf("aov: %v", body.AverageOrderValue)
	}
	if body.RepeatCustomerRate != 0.5 {
		t.Fatalf("repeat rate: %v", body.RepeatCustomerRate)
	}
}

func TestKPIsNullAOVOnEmptyView(t *testing.T) {
	s, _ := newTestServer(t)

	var body struct {
		AverageOrderValue *float64 `json:"average_order_value"`
	}
	decode(t, get(t, s, "/api/kpis?category=Nonexistent"), &body)

	if body.AverageOrderValue != nil {
		t.Fatalf("aov on empty view must be null, got %v", *body.AverageOrderValue)
	}
}

func TestFiltersEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	var body struct {
		Categories     []string `json:"categories"`
		Regions        []string `json:"regions"`
		PaymentMethods []string `json:"payment_methods"`
		DateMin        string   `json:"date_min"`
		DateMax        string   `json:"date_max"`
	}
	decode(t, get(t, s, "/api/filters"), &body)

	if len(body.Categories) != 2 || body.Categories[0] != "Clothing" {
		t.Fatalf("categories: %v", body.Categories)
	}
	if body.DateMin != "2024-01-10" || body.DateMax != "2024-02-20" {
		t.Fatalf("range: %s .. %s", body.DateMin, body.DateMax)
	}
}

func TestFilteredRevenue(t *testing.T) {
	s, _ := newTestServer(t)

	var points []struct {
		Date    string  `json:"date"`
		Revenue float64 `json:"revenue"`
	}
	decode(t, get(t, s, "/api/revenue/daily?region=South"), &points)

	if len(points) != 1 || points[0].Date != "2024-02-20" || points[0].Revenue != 8.0 {
		t.Fatalf("filtered series: %+v", points)
	}
}

func TestBadDateParamIs400(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/kpis?from=01-02-2024")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid 'from' date") {
		t.Fatalf("body: %s", rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/kpis", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST kpis: %d", rec.Code)
	}

	if rec := get(t, s, "/api/reload"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET reload: %d", rec.Code)
	}
}

func TestDashboardSnapshotCached(t *testing.T) {
	s, _ := newTestServer(t)

	var first, second map[string]json.RawMessage
	decode(t, get(t, s, "/api/dashboard"), &first)
	decode(t, get(t, s, "/api/dashboard"), &second)

	for _, key := range []string{"kpis", "monthly_revenue", "heatmap", "cohort", "describe"} {
		if _, ok := first[key]; !ok {
			t.Fatalf("missing %q in dashboard response", key)
		}
		if string(first[key]) != string(second[key]) {
			t.Fatalf("cached snapshot diverged on %q", key)
		}
	}
}

func TestReloadEndpoint(t *testing.T) {
	s, src := newTestServer(t)
	readsBefore := src.reads

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)

	var body struct {
		Status string `json:"status"`
		Rows   int    `json:"rows"`
	}
	decode(t, rec, &body)
	if body.Status != "reloaded" || body.Rows != 3 {
		t.Fatalf("reload: %+v", body)
	}
	if src.reads != readsBefore+1 {
		t.Fatalf("reload must re-read the source: %d reads", src.reads)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/kpis")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("missing X-Frame-Options")
	}
}
