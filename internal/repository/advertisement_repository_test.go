package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lockRowQuery     = "SELECT display_order FROM advertisements WHERE id=? LIMIT 1 FOR UPDATE"
	prevNeighbor     = "SELECT id,display_order FROM advertisements WHERE display_order<? ORDER BY display_order DESC LIMIT 1 FOR UPDATE"
	nextNeighbor     = "SELECT id,display_order FROM advertisements WHERE display_order>? ORDER BY display_order ASC LIMIT 1 FOR UPDATE"
	setOrderStmt     = "UPDATE advertisements SET display_order=? WHERE id=?"
	listActiveQuery  = "SELECT " + adColumns + " FROM advertisements WHERE is_active=1 ORDER BY display_order, created_at DESC LIMIT ?"
	adStatsQuery     = "SELECT COUNT(*), COALESCE(SUM(is_active=1),0), COALESCE(SUM(is_active=0),0), COALESCE(SUM(end_date<?),0), COALESCE(SUM(start_date>?),0) FROM advertisements"
	maxOrderQuery    = "SELECT COALESCE(MAX(display_order),0) FROM advertisements"
	toggleActiveStmt = "UPDATE advertisements SET is_active=NOT is_active WHERE id=?"
)

func newAdRepo(t *testing.T) (*AdRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAdRepo(db), mock
}

// Moving up swaps display_order with the closest smaller row, both
// updates inside one committed transaction.
func TestAdRepoMoveUpSwaps(t *testing.T) {
	repo, mock := newAdRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockRowQuery).WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"display_order"}).AddRow(3))
	mock.ExpectQuery(prevNeighbor).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_order"}).AddRow(2, 1))
	mock.ExpectExec(setOrderStmt).WithArgs(1, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(setOrderStmt).WithArgs(3, uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	moved, err := repo.MoveUp(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The first row has no smaller neighbour: reported as a no-op, the
// transaction rolls back without touching any order value.
func TestAdRepoMoveUpAtTop(t *testing.T) {
	repo, mock := newAdRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockRowQuery).WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"display_order"}).AddRow(1))
	mock.ExpectQuery(prevNeighbor).WithArgs(1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	moved, err := repo.MoveUp(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepoMoveDownAtBottom(t *testing.T) {
	repo, mock := newAdRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockRowQuery).WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"display_order"}).AddRow(7))
	mock.ExpectQuery(nextNeighbor).WithArgs(7).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	moved, err := repo.MoveDown(context.Background(), 9)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A missing row surfaces as sql.ErrNoRows from the locking read.
func TestAdRepoMoveUpUnknownID(t *testing.T) {
	repo, mock := newAdRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockRowQuery).WithArgs(uint64(77)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.MoveUp(context.Background(), 77)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Order values need not be contiguous; the swap exchanges whatever the
// neighbouring values are.
func TestAdRepoMoveDownNonContiguous(t *testing.T) {
	repo, mock := newAdRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockRowQuery).WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"display_order"}).AddRow(10))
	mock.ExpectQuery(nextNeighbor).WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_order"}).AddRow(8, 25))
	mock.ExpectExec(setOrderStmt).WithArgs(25, uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(setOrderStmt).WithArgs(10, uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	moved, err := repo.MoveDown(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepoListActive(t *testing.T) {
	repo, mock := newAdRepo(t)

	now := time.Now()
	start := now.Add(-time.Hour)
	mock.ExpectQuery(listActiveQuery).WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "cta_text", "cta_link", "image_url",
			"background_color", "text_color", "is_active", "start_date", "end_date",
			"display_order", "created_at",
		}).
			AddRow(1, "Offer", "desc", "Learn More", "/contact", nil, "#fff", "#000", true, start, nil, 1, now).
			AddRow(2, "News", "desc", "Read", "/news", "img.png", "#fff", "#000", true, nil, nil, 2, now))

	ads, err := repo.ListActive(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, "Offer", ads[0].Title)
	require.NotNil(t, ads[0].StartDate)
	assert.Nil(t, ads[0].EndDate)
	assert.Equal(t, "img.png", ads[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepoStats(t *testing.T) {
	repo, mock := newAdRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(adStatsQuery).WithArgs(now, now).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "inactive", "expired", "upcoming"}).
			AddRow(6, 4, 2, 1, 1))

	s, err := repo.Stats(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, AdStats{Total: 6, Active: 4, Inactive: 2, Expired: 1, Upcoming: 1}, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepoMaxDisplayOrder(t *testing.T) {
	repo, mock := newAdRepo(t)

	mock.ExpectQuery(maxOrderQuery).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(7))

	n, err := repo.MaxDisplayOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestAdRepoToggleActive(t *testing.T) {
	repo, mock := newAdRepo(t)

	mock.ExpectExec(toggleActiveStmt).WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT is_active FROM advertisements WHERE id=? LIMIT 1").WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"is_active"}).AddRow(false))

	active, err := repo.ToggleActive(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, active)

	mock.ExpectExec(toggleActiveStmt).WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = repo.ToggleActive(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAdNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
