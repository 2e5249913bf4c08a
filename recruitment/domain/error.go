package domain

import (
	"net/http"

	"github.com/Abraxas-365/applymint/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("DOMAIN")

// Error codes
var (
	CodeDomainNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Domain not found")
	CodeSubdomainNotFound      = ErrRegistry.Register("SUBDOMAIN_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Subdomain not found")
	CodeDomainAlreadyExists    = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "A domain with this name already exists")
	CodeSubdomainAlreadyExists = ErrRegistry.Register("SUBDOMAIN_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "A subdomain with this name already exists")
	CodeValidationFailed       = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
	CodeInvalidRequest         = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrDomainNotFound() *errx.Error {
	return ErrRegistry.New(CodeDomainNotFound)
}

func ErrSubdomainNotFound() *errx.Error {
	return ErrRegistry.New(CodeSubdomainNotFound)
}

func ErrDomainAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeDomainAlreadyExists)
}

func ErrSubdomainAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeSubdomainAlreadyExists)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
