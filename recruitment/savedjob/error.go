package savedjob

import (
	"net/http"

	"github.com/Abraxas-365/applymint/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SAVED_JOB")

// Error codes
var (
	CodeUserRequired = ErrRegistry.Register("USER_REQUIRED", errx.TypeAuthentication, http.StatusUnauthorized, "Sign in to save jobs")
)

// Helper functions
func ErrUserRequired() *errx.Error {
	return ErrRegistry.New(CodeUserRequired)
}
