package dbx

import (
	"errors"
	"net/http"

	"github.com/Abraxas-365/applymint/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("DB")

// Error codes
var (
	CodeUnavailable = ErrRegistry.Register("UNAVAILABLE", errx.TypeUnavailable, http.StatusServiceUnavailable, "Database is unavailable")
	CodeQueryFailed = ErrRegistry.Register("QUERY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Database operation failed")
)

func ErrUnavailable(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeUnavailable, cause)
}

func ErrQueryFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeQueryFailed, cause)
}

// Wrap classifies a raw driver error. Domain errors pass through untouched.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var e *errx.Error
	if errors.As(err, &e) {
		return err
	}
	if IsUnavailable(err) {
		return ErrUnavailable(err)
	}
	return ErrQueryFailed(err)
}
