package planner

import "fmt"

// ConfigError means the assistant cannot run at all in its current
// configuration (feature disabled, missing credential). No model call is
// made.
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConfigError(msg string) error {
	return &ConfigError{
		Code:    "configError",
		Message: msg,
	}
}

// ValidationError marks a malformed turn request. No model call is made.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{
		Code:    "validationError",
		Field:   field,
		Message: msg,
	}
}

// UpstreamError wraps a failed generative-model call. The provider error
// is kept for logs but handlers report only a generic retryable failure.
type UpstreamError struct {
	Code     string
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s call failed: %v", e.Code, e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(provider string, err error) error {
	return &UpstreamError{
		Code:     "upstreamError",
		Provider: provider,
		Err:      err,
	}
}
