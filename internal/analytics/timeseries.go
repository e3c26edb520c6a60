package analytics

import (
	"sort"

	"vendite/internal/core"
)

// SeriesPoint is one bucket of a revenue time series.
type SeriesPoint struct {
	Date    core.Date
	Revenue float64
}

// MonthlyPoint is one calendar month of revenue with its trailing 3-month
// moving average.
type MonthlyPoint struct {
	Month   core.Date
	Revenue float64
	Rolling float64
}

// DailyRevenue sums sales per calendar day, ascending. Days with no rows are
// absent, not zero-filled.
func DailyRevenue(v View) []SeriesPoint {
	return revenueByBucket(v, func(o core.Order) core.Date { return o.OrderDay })
}

// WeeklyRevenue sums sales per week (keyed by the week's Monday), ascending.
// Weeks with no rows are absent.
func WeeklyRevenue(v View) []SeriesPoint {
	return revenueByBucket(v, func(o core.Order) core.Date { return o.OrderWeek })
}

func revenueByBucket(v View, bucket func(core.Order) core.Date) []SeriesPoint {
	sums := map[core.Date]float64{}
	for _, o := range v.Orders {
		sums[bucket(o)] += o.Sales
	}
	points := make([]SeriesPoint, 0, len(sums))
	for d, rev := range sums {
		points = append(points, SeriesPoint{Date: d, Revenue: rev})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// MonthlyRevenue resamples sales onto a calendar-complete monthly series
// from the view's first month to its last (months with no rows contribute
// 0), then attaches a trailing 3-month moving average with a minimum window
// of one period: the first point averages one month, the second two.
func MonthlyRevenue(v View) []MonthlyPoint {
	if v.Empty() {
		return nil
	}

	sums := map[core.Date]float64{}
	first, last := v.Orders[0].OrderMonth, v.Orders[0].OrderMonth
	for _, o := range v.Orders {
		sums[o.OrderMonth] += o.Sales
		if o.OrderMonth.Before(first) {
			first = o.OrderMonth
		}
		if o.OrderMonth.After(last) {
			last = o.OrderMonth
		}
	}

	var points []MonthlyPoint
	for m := first; !m.After(last); m = m.AddMonths(1) {
		points = append(points, MonthlyPoint{Month: m, Revenue: sums[m]})
	}
	for i := range points {
		window := 3
		if i+1 < window {
			window = i + 1
		}
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += points[j].Revenue
		}
		points[i].Rolling = sum / float64(window)
	}
	return points
}
