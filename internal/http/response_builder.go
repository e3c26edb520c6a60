// Package http provides HTTP server and handler implementations.
//
// This file converts aggregation results into their JSON wire shapes. The
// only real translation is NaN: encoding/json rejects it, so every field the
// aggregation contract documents as possibly-NaN goes out as null.

package http

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"vendite/internal/analytics"
	"vendite/internal/core"
)

type kpiResponse struct {
	TotalOrders        int      `json:"total_orders"`
	TotalRevenue       float64  `json:"total_revenue"`
	AverageOrderValue  *float64 `json:"average_order_value"`
	UniqueCustomers    int      `json:"unique_customers"`
	RepeatCustomerRate float64  `json:"repeat_customer_rate"`
}

type columnStatsResponse struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"q25"`
	Median *float64 `json:"median"`
	Q75    *float64 `json:"q75"`
	Max    *float64 `json:"max"`
}

type describeResponse struct {
	RowCount int                   `json:"row_count"`
	Columns  []string              `json:"columns"`
	Missing  map[string]int        `json:"missing"`
	Numeric  []columnStatsResponse `json:"numeric"`
}

type seriesPointResponse struct {
	Date    core.Date `json:"date"`
	Revenue float64   `json:"revenue"`
}

type monthlyPointResponse struct {
	Month   core.Date `json:"month"`
	Revenue float64   `json:"revenue"`
	Rolling float64   `json:"rolling_avg"`
}

type heatmapResponse struct {
	Regions    []string    `json:"regions"`
	Categories []string    `json:"categories"`
	Cells      [][]float64 `json:"cells"`
}

type customerRevenueResponse struct {
	CustomerID string  `json:"customer_id"`
	Revenue    float64 `json:"revenue"`
}

type categoryStatsResponse struct {
	Category      string  `json:"category"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgPrice      float64 `json:"avg_price"`
	AvgDiscount   float64 `json:"avg_discount"`
	TotalQuantity int     `json:"total_quantity"`
	Orders        int     `json:"orders"`
}

type paymentShareResponse struct {
	Method  string  `json:"payment_method"`
	Revenue float64 `json:"revenue"`
	Share   float64 `json:"share"`
}

type cohortResponse struct {
	Months  []core.Date `json:"months"`
	Offsets []int       `json:"offsets"`
	Cells   [][]int     `json:"cells"`
}

type filtersResponse struct {
	Categories     []string  `json:"categories"`
	Regions        []string  `json:"regions"`
	PaymentMethods []string  `json:"payment_methods"`
	DateMin        core.Date `json:"date_min"`
	DateMax        core.Date `json:"date_max"`
}

type dashboardResponse struct {
	Describe     describeResponse          `json:"describe"`
	KPIs         kpiResponse               `json:"kpis"`
	Daily        []seriesPointResponse     `json:"daily_revenue"`
	Weekly       []seriesPointResponse     `json:"weekly_revenue"`
	Monthly      []monthlyPointResponse    `json:"monthly_revenue"`
	Heatmap      heatmapResponse           `json:"heatmap"`
	TopCustomers []customerRevenueResponse `json:"top_customers"`
	Categories   []categoryStatsResponse   `json:"categories"`
	Payments     []paymentShareResponse    `json:"payments"`
	Cohort       cohortResponse            `json:"cohort"`
}

// nullable maps NaN onto nil so the documented sentinel survives JSON
// encoding.
func nullable(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func buildKPIResponse(k analytics.KPIs) kpiResponse {
	return kpiResponse{
		TotalOrders:        k.TotalOrders,
		TotalRevenue:       k.TotalRevenue,
		AverageOrderValue:  nullable(k.AverageOrderValue),
		UniqueCustomers:    k.UniqueCustomers,
		RepeatCustomerRate: k.RepeatCustomerRate,
	}
}

func buildDescribeResponse(d analytics.Description) describeResponse {
	resp := describeResponse{
		RowCount: d.RowCount,
		Columns:  d.Columns,
		Missing:  d.Missing,
	}
	for _, c := range d.Numeric {
		resp.Numeric = append(resp.Numeric, columnStatsResponse{
			Column: c.Column,
			Count:  c.Count,
			Mean:   nullable(c.Mean),
			Std:    nullable(c.Std),
			Min:    nullable(c.Min),
			Q25:    nullable(c.Q25),
			Median: nullable(c.Median),
			Q75:    nullable(c.Q75),
			Max:    nullable(c.Max),
		})
	}
	return resp
}

func buildSeriesResponse(points []analytics.SeriesPoint) []seriesPointResponse {
	out := make([]seriesPointResponse, len(points))
	for i, p := range points {
		out[i] = seriesPointResponse{Date: p.Date, Revenue: p.Revenue}
	}
	return out
}

func buildMonthlyResponse(points []analytics.MonthlyPoint) []monthlyPointResponse {
	out := make([]monthlyPointResponse, len(points))
	for i, p := range points {
		out[i] = monthlyPointResponse{Month: p.Month, Revenue: p.Revenue, Rolling: p.Rolling}
	}
	return out
}

func buildHeatmapResponse(h analytics.Heatmap) heatmapResponse {
	return heatmapResponse{Regions: h.Regions, Categories: h.Categories, Cells: h.Cells}
}

func buildCustomersResponse(ranked []analytics.CustomerRevenue) []customerRevenueResponse {
	out := make([]customerRevenueResponse, len(ranked))
	for i, c := range ranked {
		out[i] = customerRevenueResponse{CustomerID: c.CustomerID, Revenue: c.Revenue}
	}
	return out
}

func buildCategoriesResponse(stats []analytics.CategoryStats) []categoryStatsResponse {
	out := make([]categoryStatsResponse, len(stats))
	for i, c := range stats {
		out[i] = categoryStatsResponse{
			Category:      c.Category,
			TotalRevenue:  c.TotalRevenue,
			AvgPrice:      c.AvgPrice,
			AvgDiscount:   c.AvgDiscount,
			TotalQuantity: c.TotalQuantity,
			Orders:        c.Orders,
		}
	}
	return out
}

func buildPaymentsResponse(shares []analytics.PaymentShare) []paymentShareResponse {
	out := make([]paymentShareResponse, len(shares))
	for i, p := range shares {
		out[i] = paymentShareResponse{Method: p.Method, Revenue: p.Revenue, Share: p.Share}
	}
	return out
}

func buildCohortResponse(c analytics.Cohort) cohortResponse {
	resp := cohortResponse{Months: c.Months, Offsets: c.Offsets, Cells: c.Cells}
	if resp.Months == nil {
		resp.Months = []core.Date{}
	}
	if resp.Offsets == nil {
		resp.Offsets = []int{}
	}
	if resp.Cells == nil {
		resp.Cells = [][]int{}
	}
	return resp
}

func buildDashboardResponse(snap analytics.Snapshot) dashboardResponse {
	return dashboardResponse{
		Describe:     buildDescribeResponse(snap.Describe),
		KPIs:         buildKPIResponse(snap.KPIs),
		Daily:        buildSeriesResponse(snap.Daily),
		Weekly:       buildSeriesResponse(snap.Weekly),
		Monthly:      buildMonthlyResponse(snap.Monthly),
		Heatmap:      buildHeatmapResponse(snap.Heatmap),
		TopCustomers: buildCustomersResponse(snap.TopCustomers),
		Categories:   buildCategoriesResponse(snap.Categories),
		Payments:     buildPaymentsResponse(snap.Payments),
		Cohort:       buildCohortResponse(snap.Cohort),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
