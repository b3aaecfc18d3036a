package repository

import (
	"context"
	"database/sql"

	"github.com/thuwalaco/thuwala-site/internal/model"
)

var ErrPortfolioNotFound = sql.ErrNoRows

// PortfolioRepo provides persistence for portfolio items.
type PortfolioRepo struct{ db *sql.DB }

func NewPortfolioRepo(db *sql.DB) *PortfolioRepo { return &PortfolioRepo{db: db} }

const portfolioColumns = "id,title,client,description,category,image_url,project_url,technologies,testimonial,client_name,client_role,featured,created_at"

// Create inserts a portfolio item and stores its new ID on the model.
func (r *PortfolioRepo) Create(ctx context.Context, p *model.PortfolioItem) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO portfolio_items (title, client, description, category, image_url, project_url, technologies, testimonial, client_name, client_role, featured) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		p.Title, p.Client, p.Description, p.Category, p.ImageURL, p.ProjectURL,
		p.Technologies, p.Testimonial, p.ClientName, p.ClientRole, p.Featured)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a single portfolio item.
func (r *PortfolioRepo) GetByID(ctx context.Context, id uint64) (model.PortfolioItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+portfolioColumns+" FROM portfolio_items WHERE id=? LIMIT 1", id)
	return scanPortfolio(row)
}

// List returns items in rendering order: featured first, then newest.
// An empty category returns everything.
func (r *PortfolioRepo) List(ctx context.Context, category string) ([]model.PortfolioItem, error) {
	q := "SELECT " + portfolioColumns + " FROM portfolio_items ORDER BY featured DESC, created_at DESC"
	args := []any{}
	if category != "" {
		q = "SELECT " + portfolioColumns + " FROM portfolio_items WHERE category=? ORDER BY featured DESC, created_at DESC"
		args = append(args, category)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PortfolioItem
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update replaces all editable fields of a portfolio item.
func (r *PortfolioRepo) Update(ctx context.Context, p *model.PortfolioItem) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE portfolio_items SET title=?, client=?, description=?, category=?, image_url=?, project_url=?, technologies=?, testimonial=?, client_name=?, client_role=?, featured=? WHERE id=?",
		p.Title, p.Client, p.Description, p.Category, p.ImageURL, p.ProjectURL,
		p.Technologies, p.Testimonial, p.ClientName, p.ClientRole, p.Featured, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

// Delete removes a portfolio item.
func (r *PortfolioRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM portfolio_items WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

// Count returns the number of portfolio rows. The reconciler seeds the
// sample set only when this is zero.
func (r *PortfolioRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM portfolio_items").Scan(&n)
	return n, err
}

// DistinctCategories lists the categories present, for page filtering.
func (r *PortfolioRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM portfolio_items WHERE category IS NOT NULL AND category<>'' ORDER BY category")
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

type rowScanner interface{ Scan(dest ...any) error }

func scanPortfolio(row rowScanner) (model.PortfolioItem, error) {
	var (
		p                   model.PortfolioItem
		client, desc, cat   sql.NullString
		img, proj, tech     sql.NullString
		testi, cname, crole sql.NullString
	)
	err := row.Scan(&p.ID, &p.Title, &client, &desc, &cat, &img, &proj, &tech,
		&testi, &cname, &crole, &p.Featured, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	p.Client = client.String
	p.Description = desc.String
	p.Category = cat.String
	p.ImageURL = img.String
	p.ProjectURL = proj.String
	p.Technologies = tech.String
	p.Testimonial = testi.String
	p.ClientName = cname.String
	p.ClientRole = crole.String
	return p, nil
}
