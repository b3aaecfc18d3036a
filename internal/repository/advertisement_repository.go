package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/thuwalaco/thuwala-site/internal/model"
)

var ErrAdNotFound = sql.ErrNoRows

// AdFilter selects which advertisements an admin listing returns.
type AdFilter string

const (
	AdFilterAll      AdFilter = "all"
	AdFilterActive   AdFilter = "active"
	AdFilterInactive AdFilter = "inactive"
	AdFilterExpired  AdFilter = "expired"
	AdFilterUpcoming AdFilter = "upcoming"
)

// AdStats aggregates the counters shown on the admin listing.
type AdStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Expired  int `json:"expired"`
	Upcoming int `json:"upcoming"`
}

// AdRepo provides persistence for advertisements, including the
// move-up/move-down ordering operations. display_order values define a
// strict total order but need not be contiguous.
type AdRepo struct{ db *sql.DB }

func NewAdRepo(db *sql.DB) *AdRepo { return &AdRepo{db: db} }

const adColumns = "id,title,description,cta_text,cta_link,image_url,background_color,text_color,is_active,start_date,end_date,display_order,created_at"

// Create inserts an advertisement and stores its new ID on the model.
func (r *AdRepo) Create(ctx context.Context, a *model.Advertisement) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO advertisements (title, description, cta_text, cta_link, image_url, background_color, text_color, is_active, start_date, end_date, display_order) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		a.Title, a.Description, a.CTAText, a.CTALink, a.ImageURL,
		a.BackgroundColor, a.TextColor, a.IsActive, a.StartDate, a.EndDate, a.DisplayOrder)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID fetches a single advertisement.
func (r *AdRepo) GetByID(ctx context.Context, id uint64) (model.Advertisement, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+adColumns+" FROM advertisements WHERE id=? LIMIT 1", id)
	return scanAd(row)
}

// ListActive returns up to limit active ads in rendering order for the
// public homepage.
func (r *AdRepo) ListActive(ctx context.Context, limit int) ([]model.Advertisement, error) {
	return r.query(ctx,
		"SELECT "+adColumns+" FROM advertisements WHERE is_active=1 ORDER BY display_order, created_at DESC LIMIT ?", limit)
}

// List returns ads for the admin listing, filtered and in rendering
// order. The expired/upcoming filters compare the validity window
// against now.
func (r *AdRepo) List(ctx context.Context, filter AdFilter, now time.Time) ([]model.Advertisement, error) {
	q := "SELECT " + adColumns + " FROM advertisements ORDER BY display_order, created_at DESC"
	args := []any{}
	switch filter {
	case AdFilterActive:
		q = "SELECT " + adColumns + " FROM advertisements WHERE is_active=1 ORDER BY display_order, created_at DESC"
	case AdFilterInactive:
		q = "SELECT " + adColumns + " FROM advertisements WHERE is_active=0 ORDER BY display_order, created_at DESC"
	case AdFilterExpired:
		q = "SELECT " + adColumns + " FROM advertisements WHERE end_date<? ORDER BY display_order, created_at DESC"
		args = append(args, now)
	case AdFilterUpcoming:
		q = "SELECT " + adColumns + " FROM advertisements WHERE start_date>? ORDER BY display_order, created_at DESC"
		args = append(args, now)
	}
	return r.query(ctx, q, args...)
}

// Stats returns the counter block for the admin listing.
func (r *AdRepo) Stats(ctx context.Context, now time.Time) (AdStats, error) {
	var s AdStats
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_active=1),0), COALESCE(SUM(is_active=0),0), COALESCE(SUM(end_date<?),0), COALESCE(SUM(start_date>?),0) FROM advertisements",
		now, now).Scan(&s.Total, &s.Active, &s.Inactive, &s.Expired, &s.Upcoming)
	return s, err
}

// Update replaces all editable fields of an advertisement.
func (r *AdRepo) Update(ctx context.Context, a *model.Advertisement) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE advertisements SET title=?, description=?, cta_text=?, cta_link=?, image_url=?, background_color=?, text_color=?, is_active=?, start_date=?, end_date=?, display_order=? WHERE id=?",
		a.Title, a.Description, a.CTAText, a.CTALink, a.ImageURL,
		a.BackgroundColor, a.TextColor, a.IsActive, a.StartDate, a.EndDate, a.DisplayOrder, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAdNotFound
	}
	return nil
}

// ToggleActive flips the is_active flag and returns the new value.
func (r *AdRepo) ToggleActive(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE advertisements SET is_active=NOT is_active WHERE id=?", id)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, ErrAdNotFound
	}
	var active bool
	err = r.db.QueryRowContext(ctx,
		"SELECT is_active FROM advertisements WHERE id=? LIMIT 1", id).Scan(&active)
	return active, err
}

// Delete removes an advertisement.
func (r *AdRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM advertisements WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAdNotFound
	}
	return nil
}

// Count returns the number of advertisement rows. The reconciler
// seeds the sample set only when this is zero.
func (r *AdRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM advertisements").Scan(&n)
	return n, err
}

// MaxDisplayOrder returns the current highest display_order, 0 when
// the table is empty. New ads are appended after it.
func (r *AdRepo) MaxDisplayOrder(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(display_order),0) FROM advertisements").Scan(&n)
	return n, err
}

// MoveUp swaps the ad's display_order with the closest smaller one.
// Both updates run inside one transaction so a failure between the two
// writes cannot leave a duplicated order value. Returns false without
// error when the ad is already first.
func (r *AdRepo) MoveUp(ctx context.Context, id uint64) (bool, error) {
	return r.swap(ctx, id,
		"SELECT id,display_order FROM advertisements WHERE display_order<? ORDER BY display_order DESC LIMIT 1 FOR UPDATE")
}

// MoveDown swaps the ad's display_order with the closest greater one.
// Returns false without error when the ad is already last.
func (r *AdRepo) MoveDown(ctx context.Context, id uint64) (bool, error) {
	return r.swap(ctx, id,
		"SELECT id,display_order FROM advertisements WHERE display_order>? ORDER BY display_order ASC LIMIT 1 FOR UPDATE")
}

func (r *AdRepo) swap(ctx context.Context, id uint64, neighborQuery string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var order int
	err = tx.QueryRowContext(ctx,
		"SELECT display_order FROM advertisements WHERE id=? LIMIT 1 FOR UPDATE",
		id).Scan(&order)
	if err != nil {
		return false, err
	}

	var (
		neighborID    uint64
		neighborOrder int
	)
	err = tx.QueryRowContext(ctx, neighborQuery, order).Scan(&neighborID, &neighborOrder)
	if err == sql.ErrNoRows {
		// Already at the boundary: a reported no-op, not an error.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE advertisements SET display_order=? WHERE id=?", neighborOrder, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE advertisements SET display_order=? WHERE id=?", order, neighborID); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *AdRepo) query(ctx context.Context, q string, args ...any) ([]model.Advertisement, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Advertisement
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAd(row rowScanner) (model.Advertisement, error) {
	var (
		a          model.Advertisement
		desc, link sql.NullString
		img        sql.NullString
		start, end sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Title, &desc, &a.CTAText, &link, &img,
		&a.BackgroundColor, &a.TextColor, &a.IsActive, &start, &end,
		&a.DisplayOrder, &a.CreatedAt)
	if err != nil {
		return a, err
	}
	a.Description = desc.String
	a.CTALink = link.String
	a.ImageURL = img.String
	if start.Valid {
		t := start.Time
		a.StartDate = &t
	}
	if end.Valid {
		t := end.Time
		a.EndDate = &t
	}
	return a, nil
}
