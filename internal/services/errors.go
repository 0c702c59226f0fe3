package services

import "errors"

var (
	// ErrNotFound means the short code has no stored mapping.
	ErrNotFound = errors.New("link not found")
	// ErrConflict means the insert lost the uniqueness race even after retry.
	ErrConflict = errors.New("short code conflict")
	// ErrExhausted means every generated candidate collided; operator-visible.
	ErrExhausted = errors.New("failed to generate unique short code")
)

// ValidationError carries a user-correctable reason suitable for a 4xx body.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidation reports whether err is user-correctable input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
