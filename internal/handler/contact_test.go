package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thuwalaco/thuwala-site/internal/config"
	"github.com/thuwalaco/thuwala-site/internal/repository"
)

func newContactHandler(t *testing.T) (*ContactHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		WhatsAppNumber: "+265991234567",
		Mail:           config.Mail{AdminTo: "admin@thuwalaco.com"},
	}
	return NewContactHandler(cfg, repository.NewContactRepo(db)), mock
}

func TestContactInfoIncludesWhatsApp(t *testing.T) {
	h, _ := newContactHandler(t)

	c, rec := postJSON(t, "/v1/contact", "")
	require.NoError(t, h.Info(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://wa.me/265991234567")
	assert.Contains(t, rec.Body.String(), "admin@thuwalaco.com")
}

func TestContactSubmitStoresMessage(t *testing.T) {
	h, mock := newContactHandler(t)

	mock.ExpectExec("INSERT INTO contact_messages (name, email, phone, subject, message) VALUES (?,?,?,?,?)").
		WithArgs("Jane Doe", "jane@example.com", "", "Project inquiry", "We need help with our data dashboard.").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := postJSON(t, "/v1/contact",
		`{"name":"Jane Doe","email":"jane@example.com","subject":"Project inquiry","message":"We need help with our data dashboard."}`)
	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Validation failures never reach the database.
func TestContactSubmitValidation(t *testing.T) {
	h, mock := newContactHandler(t)

	cases := []string{
		`{}`,
		`{"name":"J","email":"jane@example.com","subject":"Hi","message":"Hello there"}`,
		`{"name":"Jane","email":"not-an-email","subject":"Hi","message":"Hello there"}`,
		`{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"x"}`,
	}
	for _, body := range cases {
		c, rec := postJSON(t, "/v1/contact", body)
		require.NoError(t, h.Submit(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
