package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thuwalaco/thuwala-site/internal/repository"
)

const (
	adminByUsername  = "SELECT id,username,email,password_hash,created_at FROM users WHERE username=? LIMIT 1"
	schemaColumns    = "SELECT column_name FROM information_schema.columns WHERE table_schema=DATABASE() AND table_name=?"
	missingCategory  = "SELECT id,title,description,icon,details,category FROM services WHERE category IS NULL OR category=''"
	serviceTitles    = "SELECT title FROM services"
	serviceCount     = "SELECT COUNT(*) FROM services"
	portfolioCount   = "SELECT COUNT(*) FROM portfolio_items"
	adCount          = "SELECT COUNT(*) FROM advertisements"
	serviceInsert    = "INSERT INTO services (title, description, icon, details, category) VALUES (?,?,?,?,?)"
	userInsert       = "INSERT INTO users (username, email, password_hash) VALUES (?,?,?)"
	portfolioInsert  = "INSERT INTO portfolio_items (title, client, description, category, image_url, project_url, technologies, testimonial, client_name, client_role, featured) VALUES (?,?,?,?,?,?,?,?,?,?,?)"
	adInsert         = "INSERT INTO advertisements (title, description, cta_text, cta_link, image_url, background_color, text_color, is_active, start_date, end_date, display_order) VALUES (?,?,?,?,?,?,?,?,?,?,?)"
	categoryBackfill = "UPDATE services SET category=? WHERE id=?"
	tokenSweep       = "DELETE FROM password_reset_tokens WHERE expires_at<?"
)

func newTestReconciler(t *testing.T) (*Reconciler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := &Reconciler{
		Schema:     repository.NewSchemaRepo(db),
		Users:      repository.NewUserRepo(db),
		Services:   repository.NewServiceRepo(db),
		Portfolio:  repository.NewPortfolioRepo(db),
		Ads:        repository.NewAdRepo(db),
		Tokens:     repository.NewTokenRepo(db),
		BcryptCost: 4, // keep the test fast
		Now:        func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
	return r, mock
}

func serviceColumnNames() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"column_name"}).
		AddRow("id").AddRow("title").AddRow("description").
		AddRow("icon").AddRow("details").AddRow("category")
}

// Cold start: empty tables, all steps perform their writes.
func TestReconcilerColdStart(t *testing.T) {
	r, mock := newTestReconciler(t)

	// Schema check: category column missing, gets added.
	mock.ExpectQuery(schemaColumns).WithArgs("services").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("id").AddRow("title").AddRow("description").
			AddRow("icon").AddRow("details"))
	mock.ExpectExec("ALTER TABLE services ADD COLUMN category VARCHAR(100) NULL").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Admin absent, created with the default credentials.
	mock.ExpectQuery(adminByUsername).WithArgs(AdminUsername).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))
	mock.ExpectExec(userInsert).
		WithArgs(AdminUsername, AdminEmail, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	// No rows need a category backfill.
	mock.ExpectQuery(missingCategory).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "icon", "details", "category"}))

	// No titles present; every catalog service is inserted.
	mock.ExpectQuery(serviceTitles).
		WillReturnRows(sqlmock.NewRows([]string{"title"}))
	for i, s := range Services {
		mock.ExpectExec(serviceInsert).
			WithArgs(s.Title, s.Description, s.Icon, s.Details, s.Category).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}

	mock.ExpectQuery(serviceCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(len(Services)))

	// Empty portfolio and ads tables are seeded.
	mock.ExpectQuery(portfolioCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	for i := range PortfolioItems {
		mock.ExpectExec(portfolioInsert).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}

	mock.ExpectQuery(adCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	for i, a := range Advertisements {
		mock.ExpectExec(adInsert).
			WithArgs(a.Title, a.Description, a.CTAText, a.CTALink, a.ImageURL,
				a.BackgroundColor, a.TextColor, a.IsActive, a.StartDate, a.EndDate, i+1).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}

	mock.ExpectExec(tokenSweep).
		WithArgs(r.Now()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r.Run(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Steady state: everything already present, the run only reads.
func TestReconcilerSteadyState(t *testing.T) {
	r, mock := newTestReconciler(t)

	mock.ExpectQuery(schemaColumns).WithArgs("services").
		WillReturnRows(serviceColumnNames())

	mock.ExpectQuery(adminByUsername).WithArgs(AdminUsername).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, AdminUsername, AdminEmail, "$2a$04$hash", time.Now()))

	mock.ExpectQuery(missingCategory).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "icon", "details", "category"}))

	titles := sqlmock.NewRows([]string{"title"})
	for _, s := range Services {
		titles.AddRow(s.Title)
	}
	mock.ExpectQuery(serviceTitles).WillReturnRows(titles)

	mock.ExpectQuery(serviceCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(len(Services)))
	mock.ExpectQuery(portfolioCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(6))
	mock.ExpectQuery(adCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))

	mock.ExpectExec(tokenSweep).
		WithArgs(r.Now()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	r.Run(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second Run on the same reconciler is a no-op: no queries at all.
func TestReconcilerRunsOnce(t *testing.T) {
	r, mock := newTestReconciler(t)

	mock.ExpectQuery(schemaColumns).WithArgs("services").
		WillReturnRows(serviceColumnNames())
	mock.ExpectQuery(adminByUsername).WithArgs(AdminUsername).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, AdminUsername, AdminEmail, "$2a$04$hash", time.Now()))
	mock.ExpectQuery(missingCategory).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "icon", "details", "category"}))
	titles := sqlmock.NewRows([]string{"title"})
	for _, s := range Services {
		titles.AddRow(s.Title)
	}
	mock.ExpectQuery(serviceTitles).WillReturnRows(titles)
	mock.ExpectQuery(serviceCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(len(Services)))
	mock.ExpectQuery(portfolioCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(adCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec(tokenSweep).
		WithArgs(r.Now()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r.Run(context.Background())
	require.NoError(t, mock.ExpectationsWereMet())

	// No further expectations registered; any query now would fail.
	r.Run(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A legacy row without a category is classified and updated in place;
// its title is already present so no duplicate insert happens.
func TestReconcilerBackfillWithoutDuplicate(t *testing.T) {
	r, mock := newTestReconciler(t)

	mock.ExpectQuery(schemaColumns).WithArgs("services").
		WillReturnRows(serviceColumnNames())

	mock.ExpectQuery(adminByUsername).WithArgs(AdminUsername).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, AdminUsername, AdminEmail, "$2a$04$hash", time.Now()))

	mock.ExpectQuery(missingCategory).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "icon", "details", "category"}).
			AddRow(7, "Data Management & Analytics", "d", "i", "x", nil))
	mock.ExpectExec(categoryBackfill).
		WithArgs("data", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	titles := sqlmock.NewRows([]string{"title"})
	for _, s := range Services {
		titles.AddRow(s.Title)
	}
	mock.ExpectQuery(serviceTitles).WillReturnRows(titles)

	mock.ExpectQuery(serviceCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(len(Services)))
	mock.ExpectQuery(portfolioCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(6))
	mock.ExpectQuery(adCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectExec(tokenSweep).
		WithArgs(r.Now()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r.Run(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Losing an insert race to another cold-start worker is not a
// failure: the unique index rejects the second insert and the
// duplicate-key error reads as "already present".
func TestReconcilerAbsorbsDuplicateKey(t *testing.T) {
	r, mock := newTestReconciler(t)

	mock.ExpectQuery(schemaColumns).WithArgs("services").
		WillReturnRows(serviceColumnNames())

	// Admin looks absent but another worker wins the insert.
	mock.ExpectQuery(adminByUsername).WithArgs(AdminUsername).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))
	mock.ExpectExec(userInsert).
		WithArgs(AdminUsername, AdminEmail, sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'admin' for key 'uq_users_username'"))

	mock.ExpectQuery(missingCategory).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "icon", "details", "category"}))

	// The first catalog service loses the same race; the remaining
	// nine still seed.
	mock.ExpectQuery(serviceTitles).
		WillReturnRows(sqlmock.NewRows([]string{"title"}))
	for i, s := range Services {
		e := mock.ExpectExec(serviceInsert).
			WithArgs(s.Title, s.Description, s.Icon, s.Details, s.Category)
		if i == 0 {
			e.WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '" + s.Title + "' for key 'uq_services_title'"))
			continue
		}
		e.WillReturnResult(sqlmock.NewResult(int64(i), 1))
	}

	mock.ExpectQuery(serviceCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(len(Services)))
	mock.ExpectQuery(portfolioCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(6))
	mock.ExpectQuery(adCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))

	// The sweep at the tail proves neither duplicate aborted the run.
	mock.ExpectExec(tokenSweep).
		WithArgs(r.Now()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r.Run(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failing step never aborts the remaining steps.
func TestReconcilerContinuesAfterStepFailure(t *testing.T) {
	r, mock := newTestReconciler(t)

	// Schema query errors out; every later step still runs.
	mock.ExpectQuery(schemaColumns).WithArgs("services").
		WillReturnError(assert.AnError)

	mock.ExpectQuery(adminByUsername).WithArgs(AdminUsername).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, AdminUsername, AdminEmail, "$2a$04$hash", time.Now()))
	mock.ExpectQuery(missingCategory).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "icon", "details", "category"}))
	titles := sqlmock.NewRows([]string{"title"})
	for _, s := range Services {
		titles.AddRow(s.Title)
	}
	mock.ExpectQuery(serviceTitles).WillReturnRows(titles)
	mock.ExpectQuery(serviceCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(len(Services)))
	mock.ExpectQuery(portfolioCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(6))
	mock.ExpectQuery(adCount).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectExec(tokenSweep).
		WithArgs(r.Now()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r.Run(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}
