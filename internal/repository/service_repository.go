package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/thuwalaco/thuwala-site/internal/model"
)

var ErrServiceNotFound = sql.ErrNoRows

// ServiceRepo provides persistence for service offerings. The title
// column carries a unique index which doubles as the seeding identity
// key: a concurrent second insert of the same catalog entry fails with
// a duplicate-key error instead of creating a duplicate row.
type ServiceRepo struct{ db *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

// Create inserts a service and stores its new ID on the model.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO services (title, description, icon, details, category) VALUES (?,?,?,?,?)",
		strings.TrimSpace(s.Title), s.Description, s.Icon, s.Details, nullable(s.Category))
	if err != nil {
		if isDuplicate(err) {
			return ErrTitleExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a single service.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	var (
		s   model.Service
		cat sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id,title,description,icon,details,category FROM services WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.Details, &cat)
	s.Category = cat.String
	return s, err
}

// List returns all services ordered by id, matching the public page.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	return r.query(ctx,
		"SELECT id,title,description,icon,details,category FROM services ORDER BY id")
}

// ListLimit returns up to n services for the homepage.
func (r *ServiceRepo) ListLimit(ctx context.Context, n int) ([]model.Service, error) {
	return r.query(ctx,
		"SELECT id,title,description,icon,details,category FROM services ORDER BY id LIMIT ?", n)
}

// ListByCategory returns services grouped for the admin page.
func (r *ServiceRepo) ListByCategory(ctx context.Context) ([]model.Service, error) {
	return r.query(ctx,
		"SELECT id,title,description,icon,details,category FROM services ORDER BY category, id")
}

// ListWithoutCategory returns rows whose category is NULL or empty.
// These are legacy rows the reconciler backfills via the classifier.
func (r *ServiceRepo) ListWithoutCategory(ctx context.Context) ([]model.Service, error) {
	return r.query(ctx,
		"SELECT id,title,description,icon,details,category FROM services WHERE category IS NULL OR category=''")
}

// Titles returns the set of existing titles, used as the per-row
// idempotency check before seeding.
func (r *ServiceRepo) Titles(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT title FROM services")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out[t] = true
	}
	return out, rows.Err()
}

// Update replaces all editable fields of a service.
func (r *ServiceRepo) Update(ctx context.Context, s *model.Service) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE services SET title=?, description=?, icon=?, details=?, category=? WHERE id=?",
		strings.TrimSpace(s.Title), s.Description, s.Icon, s.Details, nullable(s.Category), s.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrTitleExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// UpdateCategory persists a backfilled category on a legacy row.
func (r *ServiceRepo) UpdateCategory(ctx context.Context, id uint64, category string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE services SET category=? WHERE id=?", category, id)
	return err
}

// Delete removes a service.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM services WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// Count returns the number of service rows.
func (r *ServiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM services").Scan(&n)
	return n, err
}

// DistinctCategories lists the non-empty categories currently in use.
func (r *ServiceRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM services WHERE category IS NOT NULL AND category<>'' ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ServiceRepo) query(ctx context.Context, q string, args ...any) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Service
	for rows.Next() {
		var (
			s   model.Service
			cat sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.Details, &cat); err != nil {
			return nil, err
		}
		s.Category = cat.String
		out = append(out, s)
	}
	return out, rows.Err()
}

// nullable maps an empty string to SQL NULL so unclassified rows stay
// distinguishable from rows with a real category.
func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
