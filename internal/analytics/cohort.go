package analytics

import (
	"sort"

	"vendite/internal/core"
)

// Cohort is the customer-retention matrix. Rows are first-purchase months
// ascending, columns the observed months-since-first offsets ascending
// (starting at 0), cells the count of distinct customers. Missing
// combinations hold 0.
//
// Cohorts are filter-relative: a customer's first month is their earliest
// order month inside the current view, so changing filters changes cohort
// membership.
type Cohort struct {
	Months  []core.Date
	Offsets []int
	Cells   [][]int // Cells[i][j] = customers for Months[i] at Offsets[j]
}

// CohortRetention builds the retention matrix from the view. A cohort row's
// offset-0 cell is always at least 1, since the customer defining the row's
// month is active in it by construction.
func CohortRetention(v View) Cohort {
	// Earliest order month per customer within the view.
	firstMonth := map[string]core.Date{}
	for _, o := range v.Orders {
		if cur, ok := firstMonth[o.CustomerID]; !ok || o.OrderMonth.Before(cur) {
			firstMonth[o.CustomerID] = o.OrderMonth
		}
	}

	// Distinct (customer, order month) pairs; each contributes one customer
	// to exactly one cell.
	type activity struct {
		customer string
		month    core.Date
	}
	pairs := map[activity]bool{}
	for _, o := range v.Orders {
		pairs[activity{o.CustomerID, o.OrderMonth}] = true
	}

	type cell struct {
		first  core.Date
		offset int
	}
	counts := map[cell]int{}
	months := map[core.Date]bool{}
	offsets := map[int]bool{}
	for p := range pairs {
		first := firstMonth[p.customer]
		offset := p.month.MonthsSince(first)
		counts[cell{first, offset}]++
		months[first] = true
		offsets[offset] = true
	}

	c := Cohort{}
	for m := range months {
		c.Months = append(c.Months, m)
	}
	sort.Slice(c.Months, func(i, j int) bool { return c.Months[i].Before(c.Months[j]) })
	for o := range offsets {
		c.Offsets = append(c.Offsets, o)
	}
	sort.Ints(c.Offsets)

	c.Cells = make([][]int, len(c.Months))
	for i, m := range c.Months {
		c.Cells[i] = make([]int, len(c.Offsets))
		for j, o := range c.Offsets {
			c.Cells[i][j] = counts[cell{m, o}]
		}
	}
	return c
}
