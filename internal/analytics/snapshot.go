package analytics

// Snapshot bundles every aggregation for one filtered view. The dashboard
// endpoint serves and caches one of these per filter spec.
type Snapshot struct {
	Describe     Description
	KPIs         KPIs
	Daily        []SeriesPoint
	Weekly       []SeriesPoint
	Monthly      []MonthlyPoint
	Heatmap      Heatmap
	TopCustomers []CustomerRevenue
	Categories   []CategoryStats
	Payments     []PaymentShare
	Cohort       Cohort
}

// BuildSnapshot runs every aggregation over the view. Each function is
// independent; the bundle exists only for the caller's convenience.
func BuildSnapshot(v View) Snapshot {
	return Snapshot{
		Describe:     Describe(v),
		KPIs:         ComputeKPIs(v),
		Daily:        DailyRevenue(v),
		Weekly:       WeeklyRevenue(v),
		Monthly:      MonthlyRevenue(v),
		Heatmap:      RevenueHeatmap(v),
		TopCustomers: TopCustomers(v, TopCustomerLimit),
		Categories:   CategorySummary(v),
		Payments:     PaymentMethodShare(v),
		Cohort:       CohortRetention(v),
	}
}
