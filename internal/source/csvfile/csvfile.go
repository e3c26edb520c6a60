// Package csvfile reads the order dataset from a delimited file. This is the
// default backend.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"vendite/internal/dataset"
)

type Source struct {
	path  string
	comma rune
}

// New builds a source for the given file. A zero comma means ','.
func New(path string, comma rune) *Source {
	if comma == 0 {
		comma = ','
	}
	return &Source{path: path, comma: comma}
}

var _ dataset.RowSource = (*Source)(nil)

// Read loads the whole file into a raw table. The first record is the
// header; short rows are tolerated, normalization treats absent cells as
// empty.
func (s *Source) Read(_ context.Context) (dataset.RawTable, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = s.comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return dataset.RawTable{}, fmt.Errorf("read %s: missing header row", s.path)
	}
	return dataset.RawTable{Columns: records[0], Rows: records[1:]}, nil
}
