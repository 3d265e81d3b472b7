package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a title-keyed lookup or removal matches no
// record.
var ErrNotFound = errors.New("listing not found")

// ErrDuplicateTitle is returned when appending a listing whose title is
// already taken. Titles key every lookup and delete, so two listings
// sharing one would make both ambiguous.
var ErrDuplicateTitle = errors.New("a listing with that title already exists")

// ErrInvalidCredentials is returned for every login failure. It is
// deliberately generic: callers cannot tell a missing account from a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrNotLoggedIn is returned when an operation requires an authenticated
// session and there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// ValidationError reports the required listing fields that were blank.
// The operation was aborted before anything was written.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// IsValidation reports whether err is a field-validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
