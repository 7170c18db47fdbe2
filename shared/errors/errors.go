package errors

import (
	"errors"
	"net/http"
)

// Error kinds. Every error produced by the board core wraps exactly one of
// these, so callers can branch with errors.Is regardless of the message.
var (
	ErrValidation             = errors.New("validation error")
	ErrNotFound               = errors.New("not found")
	ErrForbidden              = errors.New("forbidden")
	ErrUnsupportedMediaFormat = errors.New("unsupported media format")
	ErrInvalidMediaContent    = errors.New("invalid media content")
	ErrMalformedUpload        = errors.New("malformed upload")
	ErrPayloadTooLarge        = errors.New("payload too large")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Kind       error
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.Kind
}

func Validation(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest, Kind: ErrValidation}
}

func NotFound(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound, Kind: ErrNotFound}
}

func Forbidden(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden, Kind: ErrForbidden}
}

func UnsupportedMediaFormat(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnsupportedMediaType, Kind: ErrUnsupportedMediaFormat}
}

func InvalidMediaContent(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnprocessableEntity, Kind: ErrInvalidMediaContent}
}

func MalformedUpload(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest, Kind: ErrMalformedUpload}
}

func PayloadTooLarge(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusRequestEntityTooLarge, Kind: ErrPayloadTooLarge}
}

// StatusCode returns the HTTP status attached to err, or 500 when err
// carries none.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
