package core

import (
	"sort"
	"strings"
)

// FilterSpec is the value object driving every dashboard view: a row passes
// when its category, region and payment method are all selected and its
// order date falls inside the inclusive range. A new spec is built on every
// interaction; specs are never mutated after construction.
type FilterSpec struct {
	Categories     map[string]bool
	Regions        map[string]bool
	PaymentMethods map[string]bool
	DateStart      Date
	DateEnd        Date
}

// Matches reports whether the order passes the filter. Both range ends are
// inclusive and compared as calendar dates.
func (f FilterSpec) Matches(o Order) bool {
	if !f.Categories[o.Category] {
		return false
	}
	if !f.Regions[o.Region] {
		return false
	}
	if !f.PaymentMethods[o.PaymentMethod] {
		return false
	}
	if o.OrderDate.Before(f.DateStart) || o.OrderDate.After(f.DateEnd) {
		return false
	}
	return true
}

// Fingerprint returns a canonical string for the spec, suitable as a cache
// key. Selections are sorted so logically equal specs share a fingerprint.
func (f FilterSpec) Fingerprint() string {
	var b strings.Builder
	b.WriteString("cat=")
	b.WriteString(joinSorted(f.Categories))
	b.WriteString("|reg=")
	b.WriteString(joinSorted(f.Regions))
	b.WriteString("|pay=")
	b.WriteString(joinSorted(f.PaymentMethods))
	b.WriteString("|from=")
	b.WriteString(f.DateStart.String())
	b.WriteString("|to=")
	b.WriteString(f.DateEnd.String())
	return b.String()
}

func joinSorted(set map[string]bool) string {
	vals := make([]string, 0, len(set))
	for v, ok := range set {
		if ok {
			vals = append(vals, v)
		}
	}
	sort.Strings(vals)
	return strings.Join(vals, ",")
}

// NewSet builds a selection set from a list of values.
func NewSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
