package conversion

import (
	"net/http"

	"github.com/toolomni/engine/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CONVERT")

// Error codes
var (
	CodeUnsupportedAction = ErrRegistry.Register("UNSUPPORTED_ACTION", errx.TypeBusiness, http.StatusBadRequest, "Unsupported tool action")
	CodeValidationFailed  = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusUnprocessableEntity, "Request validation failed")
	CodeDecodeFailed      = ErrRegistry.Register("DECODE_FAILED", errx.TypeValidation, http.StatusUnprocessableEntity, "File could not be decoded; it may be corrupt or password protected")
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusUnsupportedMediaType, "Image format is not supported")
	CodeInvalidURL        = ErrRegistry.Register("INVALID_URL", errx.TypeValidation, http.StatusBadRequest, "URL is not valid for this tool")
	CodeUpstreamFailed    = ErrRegistry.Register("UPSTREAM_FAILED", errx.TypeExternal, http.StatusBadGateway, "Upstream service is unavailable")
	CodeVideoNotFound     = ErrRegistry.Register("VIDEO_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No video found for this URL")
	CodeDuplicateEntry    = ErrRegistry.Register("DUPLICATE_ENTRY", errx.TypeConflict, http.StatusConflict, "Duplicate archive entry name")
	CodeProcessingFailed  = ErrRegistry.Register("PROCESSING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Conversion failed unexpectedly")
)

// Helper functions
func ErrUnsupportedAction() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedAction)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrDecodeFailed() *errx.Error {
	return ErrRegistry.New(CodeDecodeFailed)
}

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrInvalidURL() *errx.Error {
	return ErrRegistry.New(CodeInvalidURL)
}

func ErrUpstreamFailed() *errx.Error {
	return ErrRegistry.New(CodeUpstreamFailed)
}

func ErrVideoNotFound() *errx.Error {
	return ErrRegistry.New(CodeVideoNotFound)
}

func ErrDuplicateEntry() *errx.Error {
	return ErrRegistry.New(CodeDuplicateEntry)
}

func ErrProcessingFailed() *errx.Error {
	return ErrRegistry.New(CodeProcessingFailed)
}
