// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the startup reconciler to distinguish between failure
// scenarios. Duplicate-key violations deserve special mention: the
// seeding logic performs check-then-insert and relies on the unique
// indexes declared in the schema as its safety net, so a duplicate-key
// insert is an expected outcome that callers translate to
// "already present" rather than an error.
package repository

import (
	"errors"
	"strings"
)

// ErrUsernameExists is returned when an insert hits the unique index
// on users.username.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert hits the unique index on
// users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrTitleExists is returned when a service insert hits the unique
// index on services.title.
var ErrTitleExists = errors.New("title already exists")

// ErrTokenExists is returned when a reset token insert collides on the
// unique token value. With 32 random bytes this is effectively never
// hit, but the constraint is still declared and mapped.
var ErrTokenExists = errors.New("token already exists")

// isDuplicate reports whether err is a MySQL duplicate-entry error
// (error code 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
