package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable, machine-checkable category of a DotdotError.
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Workspace and configuration errors. These abort a command.
	ErrWorkspaceNotFound ErrorCode = "WORKSPACE_NOT_FOUND"
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigParse       ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrConfigWrite       ErrorCode = "CONFIG_WRITE"
	ErrRepoNotFound      ErrorCode = "REPO_NOT_FOUND"
	ErrTargetExists      ErrorCode = "TARGET_EXISTS"

	// Capability errors. Folded into per-repo or per-link results.
	ErrGit   ErrorCode = "GIT"
	ErrShell ErrorCode = "SHELL"
	ErrLink  ErrorCode = "LINK"
)

// DotdotError carries a code, a message, structured details for logs and
// tests, and optionally the error it wraps.
type DotdotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *DotdotError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *DotdotError) Unwrap() error { return e.Wrapped }

// Is matches any DotdotError with the same code, so
// errors.Is(err, errors.New(ErrGit, "")) tests for a code anywhere in the
// chain.
func (e *DotdotError) Is(target error) bool {
	t, ok := target.(*DotdotError)
	return ok && t.Code == e.Code
}

// WithDetail records key=value on the error and returns it for chaining.
func (e *DotdotError) WithDetail(key string, value interface{}) *DotdotError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func build(code ErrorCode, message string, wrapped error) *DotdotError {
	return &DotdotError{Code: code, Message: message, Details: map[string]interface{}{}, Wrapped: wrapped}
}

// New returns an error with code and message.
func New(code ErrorCode, message string) *DotdotError {
	return build(code, message, nil)
}

// Newf is New with a format string.
func Newf(code ErrorCode, format string, args ...interface{}) *DotdotError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *DotdotError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotdotError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// outermost returns the first DotdotError in err's chain.
func outermost(err error) (*DotdotError, bool) {
	var de *DotdotError
	ok := errors.As(err, &de)
	return de, ok
}

// IsErrorCode reports whether the outermost DotdotError in err has code.
func IsErrorCode(err error, code ErrorCode) bool {
	de, ok := outermost(err)
	return ok && de.Code == code
}

// GetErrorCode returns the outermost code, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	if de, ok := outermost(err); ok {
		return de.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the outermost error's details, or nil.
func GetErrorDetails(err error) map[string]interface{} {
	if de, ok := outermost(err); ok {
		return de.Details
	}
	return nil
}

// Summary renders the message chain without codes:
// "pull lib: git pull: exit status 1".
func Summary(err error) string {
	if err == nil {
		return ""
	}
	de, ok := outermost(err)
	if !ok {
		return err.Error()
	}
	if de.Wrapped == nil {
		return de.Message
	}
	return de.Message + ": " + Summary(de.Wrapped)
}
