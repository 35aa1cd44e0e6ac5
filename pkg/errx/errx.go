// Package errx provides typed, registry-based errors that map cleanly onto
// HTTP responses.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and caller handling.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error definition (e.g. "CONVERT_DECODE_FAILED").
type Code string

// Error is the error value flowing through services and handlers.
type Error struct {
	Type       Type
	Code       Code
	Message    string
	HTTPStatus int
	Details    map[string]any
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a single key/value detail and returns the error for
// chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple details at once.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// ToHTTPResponse renders the error as a JSON-serializable response body.
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

type definition struct {
	typ     Type
	status  int
	message string
}

// Registry holds the error definitions of one domain package, namespaced by a
// shared prefix.
type Registry struct {
	prefix string
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with the given
// namespace (e.g. "CONVERT").
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register adds an error definition and returns its full code.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)
	r.defs[full] = definition{typ: t, status: httpStatus, message: message}
	return full
}

// New creates a fresh error for a registered code.
func (r *Registry) New(code Code) *Error {
	def, ok := r.defs[code]
	if !ok {
		return &Error{
			Type:       TypeInternal,
			Code:       code,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Type:       def.typ,
		Code:       code,
		Message:    def.message,
		HTTPStatus: def.status,
	}
}

// NewWithCause creates an error for a registered code wrapping an underlying
// cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// Wrap converts an arbitrary error into an *Error of the given type. If err is
// already an *Error it is returned unchanged so the original classification
// survives layering.
func Wrap(err error, message string, t Type) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Type:       t,
		Code:       Code(string(t)),
		Message:    message,
		HTTPStatus: statusForType(t),
		Cause:      err,
	}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

func statusForType(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusUnprocessableEntity
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeBusiness:
		return http.StatusBadRequest
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
