package services

import (
	"errors"
	"net/http"

	"todolist/internal/i18n"
)

type ErrorKind int

const (
	KindBadRequest ErrorKind = iota + 1
	KindNotFound
	KindUnauthorized
)

// Error is a client-facing failure. When Key is set the message is an i18n
// key translated at the HTTP edge; otherwise Message is sent as is.
type Error struct {
	Kind    ErrorKind
	Message string
	Key     string
	Args    i18n.Args
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}

// Text renders the message for the given translator.
func (e *Error) Text(tr i18n.Translator) string {
	if e.Key != "" {
		return tr.T(e.Key, e.Args)
	}
	return e.Message
}

func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

func BadRequestKey(key string) *Error { return &Error{Kind: KindBadRequest, Key: key} }

var (
	ErrOtpNotFound       = BadRequestKey("errors.unable_to_validate_otp_code")
	ErrOtpExpired        = BadRequestKey("errors.otp_code_expired")
	ErrInvalidOtpUseCase = BadRequestKey("errors.invalid_otp_use_case")
	ErrUserNotFoundKey   = BadRequestKey("errors.user_not_found")

	ErrTaskNotFound   = BadRequest("Task not found.")
	ErrTaskNameExists = BadRequest("Task name already exists.")
)

// AsError unwraps err into a client-facing *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
