package repository

import (
	"context"
	"database/sql"

	"github.com/thuwalaco/thuwala-site/internal/model"
)

var ErrMessageNotFound = sql.ErrNoRows

// ContactRepo provides persistence for contact form submissions.
// Messages are append-only; the only mutation is the is_read flag.
type ContactRepo struct{ db *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

// Create inserts a contact message and stores its new ID on the model.
func (r *ContactRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages (name, email, phone, subject, message) VALUES (?,?,?,?,?)",
		m.Name, m.Email, m.Phone, m.Subject, m.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a single message.
func (r *ContactRepo) GetByID(ctx context.Context, id uint64) (model.ContactMessage, error) {
	var (
		m              model.ContactMessage
		phone, subject sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id,name,email,phone,subject,message,is_read,created_at FROM contact_messages WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Name, &m.Email, &phone, &subject, &m.Message, &m.IsRead, &m.CreatedAt)
	m.Phone = phone.String
	m.Subject = subject.String
	return m, err
}

// List returns all messages, newest first.
func (r *ContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,name,email,phone,subject,message,is_read,created_at FROM contact_messages ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ContactMessage
	for rows.Next() {
		var (
			m              model.ContactMessage
			phone, subject sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &phone, &subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Phone = phone.String
		m.Subject = subject.String
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkRead flips a message's is_read flag on.
func (r *ContactRepo) MarkRead(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE contact_messages SET is_read=1 WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// CountUnread returns the number of unread messages for the dashboard.
func (r *ContactRepo) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contact_messages WHERE is_read=0").Scan(&n)
	return n, err
}

// Count returns the total number of messages.
func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&n)
	return n, err
}
