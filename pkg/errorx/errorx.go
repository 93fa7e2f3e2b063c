package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error carrying a business status code.
// It supports %w wrapping and is recognized by errors.Is/errors.As.
type CodeError struct {
	Code  int
	Msg   string
	cause error
}

func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError with the given business code and message.
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a business code and message to an underlying error.
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg, cause: err}
}

// Wrapf attaches a business code and a formatted message to an underlying error.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...), cause: err}
}

// GetCode extracts the business code from an error chain.
// Non-CodeError values map to CodeServerBusy.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business status codes.
const (
	CodeSuccess           = 1000 // ok
	CodeInvalidParam      = 1001 // malformed input
	CodeUserExist         = 1002 // username/email already registered
	CodeUserNotExist      = 1003 // user does not resolve
	CodeInvalidPassword   = 1004 // login failure
	CodeServerBusy        = 1005 // unclassified internal error
	CodeUnauthorized      = 1006 // authenticated but not permitted
	CodeNotFound          = 1008 // entity id does not resolve
	CodeConflict          = 1009 // duplicate room/request/participant
	CodeDBError           = 1010 // database failure
	CodeCacheError        = 1011 // redis failure
	CodeInvalidState      = 1012 // action on a row in the wrong state
	CodeEditWindowExpired = 1013 // message older than the edit window
	CodePrecondition      = 1014 // precondition failed (e.g. inactive user)
)

// Predefined instances, usable directly or with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid request parameter")
	ErrUnauthorized = New(CodeUnauthorized, "operation not permitted")
	ErrServerBusy   = New(CodeServerBusy, "server busy, try again later")
)

// IsNotFound reports whether err is a "not found" error, including
// gorm.ErrRecordNotFound surfaced through a wrapped CodeError.
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}

// IsCode reports whether err carries the given business code.
func IsCode(err error, code int) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == code
}
