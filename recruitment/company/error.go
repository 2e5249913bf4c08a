package company

import (
	"net/http"

	"github.com/Abraxas-365/applymint/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("COMPANY")

// Error codes
var (
	CodeCompanyNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Company not found")
	CodeCompanyAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "A company with this name already exists")
	CodeCompanyHasJobs       = ErrRegistry.Register("HAS_JOBS", errx.TypeConflict, http.StatusConflict, "Company still has jobs")
	CodeInvalidCompanySize   = ErrRegistry.Register("INVALID_SIZE", errx.TypeValidation, http.StatusBadRequest, "Unknown company size")
	CodeValidationFailed     = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
	CodeInvalidRequest       = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrCompanyNotFound() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotFound)
}

func ErrCompanyAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeCompanyAlreadyExists)
}

func ErrCompanyHasJobs() *errx.Error {
	return ErrRegistry.New(CodeCompanyHasJobs)
}

func ErrInvalidCompanySize() *errx.Error {
	return ErrRegistry.New(CodeInvalidCompanySize)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
