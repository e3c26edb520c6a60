// Package storage backs the dataset with a SQLite table. Cells round-trip as
// text so the normalizer's coercion rules apply identically to every
// backend; the table is populated by the import tool.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vendite/internal/dataset"

	_ "modernc.org/sqlite"
)

// orderColumns is the column order used for both reads and imports. It
// matches the required input columns of the dataset schema.
var orderColumns = []string{
	"order_date", "order_id", "customer_id", "category", "region",
	"payment_method", "quantity", "price", "discount",
}

type SQLiteRepository struct {
	db *sql.DB
}

var _ dataset.RowSource = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Read implements dataset.RowSource. Rows come back in insertion order so
// the canonical dataset keeps the imported row order.
func (r *SQLiteRepository) Read(ctx context.Context) (dataset.RawTable, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT order_date, order_id, customer_id, category, region,
		        payment_method, quantity, price, discount
		 FROM orders ORDER BY id`)
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	table := dataset.RawTable{Columns: append([]string(nil), orderColumns...)}
	for rows.Next() {
		row := make([]string, len(orderColumns))
		dest := make([]any, len(row))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return dataset.RawTable{}, fmt.Errorf("scan order row: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return dataset.RawTable{}, fmt.Errorf("iterate orders: %w", err)
	}
	return table, nil
}

// ReplaceOrders atomically replaces the orders table with the given raw
// rows. Column names are matched the same way the normalizer matches them;
// a missing required column aborts before anything is deleted.
func (r *SQLiteRepository) ReplaceOrders(ctx context.Context, raw dataset.RawTable) (int, error) {
	idx, err := columnIndex(raw.Columns)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return 0, fmt.Errorf("clear orders: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO orders (order_date, order_id, customer_id, category, region,
		                     payment_method, quantity, price, discount)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range raw.Rows {
		args := make([]any, len(orderColumns))
		for i, col := range orderColumns {
			args[i] = cellAt(row, idx[col])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert order row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Orders imported", "rows", len(raw.Rows))
	return len(raw.Rows), nil
}

func columnIndex(columns []string) (map[string]int, error) {
	idx := make(map[string]int, len(columns))
	for i, name := range columns {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range orderColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("import: required column %q missing", col)
		}
	}
	return idx, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
