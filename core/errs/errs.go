package errs

import "fmt"

// ConfigError indicates missing or invalid configuration (credentials,
// endpoints). It is fatal for the operation and never retried.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// Configf creates a new ConfigError with a formatted message.
func Configf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// UpstreamError indicates a failure of an external API: the call failed,
// returned an unusable payload, or returned no data at all.
type UpstreamError struct {
	msg string
	err error
}

func (e *UpstreamError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *UpstreamError) Unwrap() error { return e.err }

// Upstreamf creates a new UpstreamError with a formatted message.
func Upstreamf(format string, args ...any) error {
	return &UpstreamError{msg: fmt.Sprintf(format, args...)}
}

// UpstreamWrap wraps an underlying transport error with context.
func UpstreamWrap(err error, format string, args ...any) error {
	return &UpstreamError{msg: fmt.Sprintf(format, args...), err: err}
}

// NotFoundError indicates that a write target could not be located.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// NotFoundf creates a new NotFoundError with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}
