package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error independently of the domain that raised it
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeBusiness       Type = "BUSINESS"
	TypeExternal       Type = "EXTERNAL"
	TypeUnavailable    Type = "UNAVAILABLE"
	TypeInternal       Type = "INTERNAL"
)

// HTTPStatus returns the default status for errors of this type
func (t Type) HTTPStatus() int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	case TypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code is a fully qualified error code, e.g. "JOB.NOT_FOUND"
type Code string

func (c Code) String() string { return string(c) }

// Error is the error value returned across package boundaries
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on code so sentinel comparisons work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy of the error carrying an extra detail entry
func (e *Error) WithDetail(key string, value any) *Error {
	clone := *e
	clone.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// WithCause returns a copy of the error wrapping cause
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.Cause = cause
	return &clone
}

// ToHTTPResponse builds the JSON body sent to API clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// ============================================================================
// Registry
// ============================================================================

type definition struct {
	typ        Type
	httpStatus int
	message    string
}

// Registry holds the error codes of a single domain
type Registry struct {
	prefix string
	mu     sync.RWMutex
	codes  map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[Code]definition),
	}
}

// Register adds a code to the registry and returns its qualified form
func (r *Registry) Register(code string, typ Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "." + code)
	if httpStatus == 0 {
		httpStatus = typ.HTTPStatus()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codes[full]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", full))
	}
	r.codes[full] = definition{typ: typ, httpStatus: httpStatus, message: message}
	return full
}

// New creates an error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.codes[code]
	r.mu.RUnlock()
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Code:       code,
		Type:       def.typ,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause creates an error for a registered code wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// ============================================================================
// Helpers
// ============================================================================

// New creates an ad-hoc error of the given type
func New(message string, typ Type) *Error {
	return &Error{
		Code:       Code(typ),
		Type:       typ,
		Message:    message,
		HTTPStatus: typ.HTTPStatus(),
	}
}

// Wrap attaches a message to err. When err already carries an *Error its
// code, type and status are kept so callers can still classify it.
func Wrap(err error, message string, typ Type) *Error {
	if err == nil {
		return nil
	}
	var inner *Error
	if errors.As(err, &inner) {
		return &Error{
			Code:       inner.Code,
			Type:       inner.Type,
			Message:    message + ": " + inner.Message,
			HTTPStatus: inner.HTTPStatus,
			Details:    inner.Details,
			Cause:      err,
		}
	}
	return &Error{
		Code:       Code(typ),
		Type:       typ,
		Message:    message,
		HTTPStatus: typ.HTTPStatus(),
		Cause:      err,
	}
}

// IsType reports whether any *Error in err's chain has type typ
func IsType(err error, typ Type) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Type == typ {
				return true
			}
			err = e.Cause
			continue
		}
		return false
	}
	return false
}

// IsCode reports whether any *Error in err's chain has code code
func IsCode(err error, code Code) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Code == code {
				return true
			}
			err = e.Cause
			continue
		}
		return false
	}
	return false
}
