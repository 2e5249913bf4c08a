package job

import (
	"net/http"

	"github.com/Abraxas-365/applymint/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job already exists")
	CodeInvalidSalaryRange = ErrRegistry.Register("INVALID_SALARY_RANGE", errx.TypeValidation, http.StatusBadRequest, "Salary must be non-negative and min must not exceed max")
	CodeInvalidPostedDate  = ErrRegistry.Register("INVALID_POSTED_DATE", errx.TypeValidation, http.StatusBadRequest, "Posted date cannot be in the future")
	CodeDomainRequired     = ErrRegistry.Register("DOMAIN_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "At least one domain is required for listed jobs")
	CodeSubdomainMismatch  = ErrRegistry.Register("SUBDOMAIN_MISMATCH", errx.TypeValidation, http.StatusBadRequest, "Subdomain does not belong to a selected domain")
	CodeUnknownReference   = ErrRegistry.Register("UNKNOWN_REFERENCE", errx.TypeValidation, http.StatusBadRequest, "Referenced entity does not exist")
	CodeValidationFailed   = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeStorageUnavailable = ErrRegistry.Register("STORAGE_UNAVAILABLE", errx.TypeUnavailable, http.StatusServiceUnavailable, "Job storage is unavailable")
	CodeStorageFailure     = ErrRegistry.Register("STORAGE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "Job storage operation failed")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrInvalidSalaryRange() *errx.Error {
	return ErrRegistry.New(CodeInvalidSalaryRange)
}

func ErrInvalidPostedDate() *errx.Error {
	return ErrRegistry.New(CodeInvalidPostedDate)
}

func ErrDomainRequired() *errx.Error {
	return ErrRegistry.New(CodeDomainRequired)
}

func ErrSubdomainMismatch() *errx.Error {
	return ErrRegistry.New(CodeSubdomainMismatch)
}

func ErrUnknownReference() *errx.Error {
	return ErrRegistry.New(CodeUnknownReference)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

// ErrStorageUnavailable marks failures to reach the data store. Callers must
// surface it instead of reporting "no results".
func ErrStorageUnavailable(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorageUnavailable, cause)
}

func ErrStorageFailure(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorageFailure, cause)
}

// IsStorageUnavailable reports whether err signals an unreachable data store
func IsStorageUnavailable(err error) bool {
	return errx.IsType(err, errx.TypeUnavailable)
}
