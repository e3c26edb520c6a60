// Package dataset turns raw tabular rows into the canonical in-memory
// dataset every aggregation reads: normalization (column matching, type
// coercion), derivation of revenue and calendar buckets, and the
// process-wide reloadable handle.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"vendite/internal/core"
)

// RawTable is the loosely typed shape every source backend produces: a
// header row plus string cell values. Normalization gives it types.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// RowSource reads raw order rows from some backing store (CSV file, SQLite
// table, Google Sheet).
type RowSource interface {
	Read(ctx context.Context) (RawTable, error)
}

// Dataset is the canonical dataset: normalized, derived orders plus the
// observed categorical domains and date range. Read-only after construction.
type Dataset struct {
	Orders []core.Order

	Categories     []string
	Regions        []string
	PaymentMethods []string
	DateMin        core.Date
	DateMax        core.Date
}

// New builds a Dataset from derived orders, computing the observed domains
// (sorted ascending) and the observed date range.
func New(orders []core.Order) *Dataset {
	ds := &Dataset{Orders: orders}

	cats := map[string]bool{}
	regs := map[string]bool{}
	pays := map[string]bool{}
	for i, o := range orders {
		cats[o.Category] = true
		regs[o.Region] = true
		pays[o.PaymentMethod] = true
		if i == 0 || o.OrderDate.Before(ds.DateMin) {
			ds.DateMin = o.OrderDate
		}
		if i == 0 || o.OrderDate.After(ds.DateMax) {
			ds.DateMax = o.OrderDate
		}
	}
	ds.Categories = sortedKeys(cats)
	ds.Regions = sortedKeys(regs)
	ds.PaymentMethods = sortedKeys(pays)
	return ds
}

// DefaultFilter returns the spec selecting everything: full categorical
// domains and the full observed date range.
func (ds *Dataset) DefaultFilter() core.FilterSpec {
	return core.FilterSpec{
		Categories:     core.NewSet(ds.Categories...),
		Regions:        core.NewSet(ds.Regions...),
		PaymentMethods: core.NewSet(ds.PaymentMethods...),
		DateStart:      ds.DateMin,
		DateEnd:        ds.DateMax,
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store is the explicit process-wide handle to the canonical dataset. It is
// written once at startup and swapped wholesale on explicit reload; readers
// always see a complete dataset.
type Store struct {
	mu  sync.RWMutex
	src RowSource
	ds  *Dataset
}

// NewStore wraps a row source. Load must succeed once before Dataset is
// usable.
func NewStore(src RowSource) *Store {
	return &Store{src: src}
}

// Load reads the source, normalizes and derives, and swaps in the new
// dataset. On error the previous dataset (if any) stays in place.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.src.Read(ctx)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	orders, err := Normalize(raw)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	ds := New(Derive(orders))

	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()

	slog.InfoContext(ctx, "Dataset loaded",
		"rows", len(ds.Orders),
		"categories", len(ds.Categories),
		"regions", len(ds.Regions),
		"payment_methods", len(ds.PaymentMethods),
		"date_min", ds.DateMin.String(),
		"date_max", ds.DateMax.String())
	return nil
}

// Dataset returns the current canonical dataset, or nil before the first
// successful Load.
func (s *Store) Dataset() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}
