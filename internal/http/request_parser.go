// Package http provides HTTP server and handler implementations.
//
// This file parses filter specs out of query strings. Every selection
// parameter may repeat or hold comma-separated values; absent parameters
// default to the full observed domain or date range.

package http

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"vendite/internal/core"
	"vendite/internal/dataset"
)

// ParseFilterSpec builds the filter spec driving one dashboard view.
// Recognized parameters: category, region, payment_method (repeatable),
// from, to (calendar dates, inclusive). A malformed date is the caller's
// error; unknown selection values are kept and simply match nothing.
func ParseFilterSpec(query url.Values, ds *dataset.Dataset) (core.FilterSpec, error) {
	spec := ds.DefaultFilter()

	if vals := splitParams(query["category"]); len(vals) > 0 {
		spec.Categories = core.NewSet(vals...)
	}
	if vals := splitParams(query["region"]); len(vals) > 0 {
		spec.Regions = core.NewSet(vals...)
	}
	if vals := splitParams(query["payment_method"]); len(vals) > 0 {
		spec.PaymentMethods = core.NewSet(vals...)
	}

	if v := strings.TrimSpace(query.Get("from")); v != "" {
		d, err := parseDateParam(v)
		if err != nil {
			return core.FilterSpec{}, fmt.Errorf("invalid 'from' date: %w", err)
		}
		spec.DateStart = d
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		d, err := parseDateParam(v)
		if err != nil {
			return core.FilterSpec{}, fmt.Errorf("invalid 'to' date: %w", err)
		}
		spec.DateEnd = d
	}

	return spec, nil
}

func splitParams(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func parseDateParam(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, fmt.Errorf("%q: expected YYYY-MM-DD", s)
	}
	return core.DateOf(t), nil
}
