package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ColumnDef describes one column the application expects on a table.
// Types must be permissive (nullable) because additive alteration is
// the only operation the reconciler is allowed to perform.
type ColumnDef struct {
	Name string
	Type string // e.g. "VARCHAR(100) NULL"
}

// SchemaRepo performs additive schema reconciliation. It detects
// expected columns missing from the live table and adds them with
// nullable types. It never drops, renames or retypes columns. Callers
// tolerate failures here and continue in degraded (column-missing)
// mode rather than aborting startup.
type SchemaRepo struct{ db *sql.DB }

func NewSchemaRepo(db *sql.DB) *SchemaRepo { return &SchemaRepo{db: db} }

// Columns returns the set of column names present on the table in the
// current database.
func (r *SchemaRepo) Columns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_schema=DATABASE() AND table_name=?",
		table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = true
	}
	return out, rows.Err()
}

// EnsureColumns adds every expected column that is missing from the
// live table and returns the names it added. A failed alteration stops
// the loop and reports the error together with whatever was applied
// before it; repeated execution is safe since present columns are
// skipped.
func (r *SchemaRepo) EnsureColumns(ctx context.Context, table string, expected []ColumnDef) ([]string, error) {
	present, err := r.Columns(ctx, table)
	if err != nil {
		return nil, err
	}

	var added []string
	for _, col := range expected {
		if present[col.Name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, col.Name, col.Type)
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return added, fmt.Errorf("add column %s.%s: %w", table, col.Name, err)
		}
		added = append(added, col.Name)
	}
	return added, nil
}
