package http

import (
	"log/slog"
	"net/http"

	"vendite/internal/analytics"
)

// view is the shared prelude of every aggregation handler: method check,
// dataset availability, filter parsing. The bool reports whether the request
// was already answered.
func (s *Server) view(w http.ResponseWriter, r *http.Request) (analytics.View, bool) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return analytics.View{}, false
	}

	ds := s.store.Dataset()
	if ds == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return analytics.View{}, false
	}

	spec, err := ParseFilterSpec(r.URL.Query(), ds)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return analytics.View{}, false
	}

	return analytics.Filter(ds, spec), true
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ds := s.store.Dataset()
	if ds == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, filtersResponse{
		Categories:     ds.Categories,
		Regions:        ds.Regions,
		PaymentMethods: ds.PaymentMethods,
		DateMin:        ds.DateMin,
		DateMax:        ds.DateMax,
	})
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildDescribeResponse(analytics.Describe(v)))
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildKPIResponse(analytics.ComputeKPIs(v)))
}

func (s *Server) handleDailyRevenue(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildSeriesResponse(analytics.DailyRevenue(v)))
}

func (s *Server) handleWeeklyRevenue(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildSeriesResponse(analytics.WeeklyRevenue(v)))
}

func (s *Server) handleMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildMonthlyResponse(analytics.MonthlyRevenue(v)))
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildHeatmapResponse(analytics.RevenueHeatmap(v)))
}

func (s *Server) handleTopCustomers(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	ranked := analytics.TopCustomers(v, analytics.TopCustomerLimit)
	writeJSON(w, http.StatusOK, buildCustomersResponse(ranked))
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildCategoriesResponse(analytics.CategorySummary(v)))
}

func (s *Server) handlePaymentShare(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildPaymentsResponse(analytics.PaymentMethodShare(v)))
}

func (s *Server) handleCohort(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildCohortResponse(analytics.CohortRetention(v)))
}

// handleDashboard serves the full snapshot for one filter spec, cached by
// the spec's fingerprint until reload or TTL.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ds := s.store.Dataset()
	if ds == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	spec, err := ParseFilterSpec(r.URL.Query(), ds)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := spec.Fingerprint()
	snap, hit := s.snapshotCache.Get(key)
	if !hit {
		snap = analytics.BuildSnapshot(analytics.Filter(ds, spec))
		s.snapshotCache.Set(key, snap)
	}
	slog.DebugContext(r.Context(), "Dashboard snapshot served", "cache_hit", hit, "filter", key)

	writeJSON(w, http.StatusOK, buildDashboardResponse(snap))
}

// handleReload rebuilds the canonical dataset from the configured source.
// The snapshot cache is purged on success; on failure the previous dataset
// stays live.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := s.store.Load(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Dataset reload failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.snapshotCache.Purge()

	ds := s.store.Dataset()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "reloaded",
		"rows":   len(ds.Orders),
	})
}

// PurgeSnapshots drops cached snapshots. Called after out-of-band reloads
// (AMQP-triggered).
func (s *Server) PurgeSnapshots() {
	s.snapshotCache.Purge()
}
