package apperr

import (
	"errors"
	"strings"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrConfiguration   = errors.New("configuration error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInternal        = errors.New("internal error")
)

// ConfigurationError names every required setting that was missing or empty.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: missing " + strings.Join(e.Missing, ", ")
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// RequireNonEmpty collects the names whose values are empty and returns a
// *ConfigurationError for them, or nil when all are set.
func RequireNonEmpty(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ConfigurationError{Missing: missing}
}
