// Package queue defines message payloads exchanged over the message broker.
package queue

// ContactReceivedEvent is published when a visitor submits the contact form.
// It carries enough information for downstream consumers to log or notify
// the admin without querying the primary database.
type ContactReceivedEvent struct {
	MessageID  uint64 `json:"message_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	ReceivedAt string `json:"received_at"`
}
