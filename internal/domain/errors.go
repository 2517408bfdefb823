package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Domain Error Types
// ============================================================================

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ============================================================================
// Common Domain Errors
// ============================================================================

var (
	// Configuration Errors
	ErrConfigInvalid = &DomainError{
		Code:    "CONFIG_INVALID",
		Message: "configuration is invalid",
	}

	// Upstream Errors
	ErrUpstreamRequestFailed = &DomainError{
		Code:    "UPSTREAM_REQUEST_FAILED",
		Message: "upstream request failed",
	}
	ErrUpstreamNoLocation = &DomainError{
		Code:    "UPSTREAM_NO_LOCATION",
		Message: "upstream response has no Location header",
	}

	// Session Errors
	ErrSessionStore = &DomainError{
		Code:    "SESSION_STORE_FAILED",
		Message: "session store operation failed",
	}
)

// ============================================================================
// Error Wrapping Helpers
// ============================================================================

// WrapConfigInvalid wraps an error as an invalid configuration value
func WrapConfigInvalid(field string, cause error) error {
	return &DomainError{
		Code:    ErrConfigInvalid.Code,
		Message: fmt.Sprintf("invalid %s", field),
		Cause:   cause,
	}
}

// WrapUpstreamRequestFailed wraps a transport failure against an upstream URL
func WrapUpstreamRequestFailed(target string, cause error) error {
	return &DomainError{
		Code:    ErrUpstreamRequestFailed.Code,
		Message: fmt.Sprintf("request to %s failed", target),
		Cause:   cause,
	}
}

// WrapSessionStore wraps a session store failure
func WrapSessionStore(operation string, cause error) error {
	return &DomainError{
		Code:    ErrSessionStore.Code,
		Message: fmt.Sprintf("session store %s failed", operation),
		Cause:   cause,
	}
}

// ============================================================================
// Error Checking Helpers
// ============================================================================

// IsUpstreamError checks if an error came from the upstream auth gateway
func IsUpstreamError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrUpstreamRequestFailed.Code ||
			domainErr.Code == ErrUpstreamNoLocation.Code
	}
	return false
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrConfigInvalid.Code
	}
	return false
}

// IsSessionStoreError checks if an error is a session store failure
func IsSessionStoreError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == ErrSessionStore.Code
	}
	return false
}

// ClientMessage returns the generic message for the error's code, leaving out
// targets and causes. Unknown errors map to a generic upstream failure.
func ClientMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case ErrConfigInvalid.Code:
			return ErrConfigInvalid.Message
		case ErrUpstreamNoLocation.Code:
			return ErrUpstreamNoLocation.Message
		case ErrSessionStore.Code:
			return ErrSessionStore.Message
		}
	}
	return ErrUpstreamRequestFailed.Message
}
