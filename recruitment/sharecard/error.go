package sharecard

import (
	"net/http"

	"github.com/Abraxas-365/applymint/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SHARE_CARD")

// Error codes
var (
	CodeRenderFailed     = ErrRegistry.Register("RENDER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Could not render share image")
	CodeQueueFailed      = ErrRegistry.Register("QUEUE_FAILED", errx.TypeUnavailable, http.StatusServiceUnavailable, "Could not queue share image generation")
	CodeUploadFailed     = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Could not store file")
	CodeInvalidFileType  = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Only image uploads are accepted")
	CodeFileSizeTooLarge = ErrRegistry.Register("FILE_SIZE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size exceeds maximum allowed")
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrRenderFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeRenderFailed, cause)
}

func ErrQueueFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeQueueFailed, cause)
}

func ErrUploadFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeUploadFailed, cause)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrFileSizeTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileSizeTooLarge)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
