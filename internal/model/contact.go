package model

import "time"

// ContactMessage represents a public contact form submission. Rows are
// created by the public site, only ever mutated through the IsRead
// flag and never deleted automatically.
type ContactMessage struct {
	ID        uint64    // contact_messages.id
	Name      string    // contact_messages.name
	Email     string    // contact_messages.email
	Phone     string    // contact_messages.phone
	Subject   string    // contact_messages.subject
	Message   string    // contact_messages.message
	IsRead    bool      // contact_messages.is_read
	CreatedAt time.Time // contact_messages.created_at
}
