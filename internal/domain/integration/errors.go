package integration

import (
	"fmt"
)

// ConfigurationError reports missing platform credentials. It is never retried.
type ConfigurationError struct {
	Platform PlatformCode
	Message  string
}

// NewConfigurationError creates a configuration error for the platform
func NewConfigurationError(platform PlatformCode, message string) *ConfigurationError {
	return &ConfigurationError{Platform: platform, Message: message}
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Platform.DisplayName(), e.Message)
}

// Unwrap allows errors.Is(err, ErrPlatformNotConfigured)
func (e *ConfigurationError) Unwrap() error {
	return ErrPlatformNotConfigured
}

// UpstreamError reports a failed or malformed upstream response.
// StatusCode is zero when no HTTP response was received.
type UpstreamError struct {
	Platform   PlatformCode
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API 오류: %d", e.Platform.DisplayName(), e.StatusCode)
	}
	return fmt.Sprintf("%s API 오류: %v", e.Platform.DisplayName(), e.Err)
}

// Unwrap returns the underlying sentinel or transport error
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
