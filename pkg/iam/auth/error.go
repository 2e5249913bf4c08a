package auth

import (
	"net/http"

	"github.com/Abraxas-365/applymint/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeUnauthorized      = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthentication, http.StatusUnauthorized, "Authentication required")
	CodeInvalidToken      = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid or expired token")
	CodeInvalidAPIKey     = ErrRegistry.Register("INVALID_API_KEY", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid API key")
	CodeInsufficientScope = ErrRegistry.Register("INSUFFICIENT_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrUnauthorized() *errx.Error {
	return ErrRegistry.New(CodeUnauthorized)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrInvalidAPIKey() *errx.Error {
	return ErrRegistry.New(CodeInvalidAPIKey)
}

func ErrInsufficientScope() *errx.Error {
	return ErrRegistry.New(CodeInsufficientScope)
}
