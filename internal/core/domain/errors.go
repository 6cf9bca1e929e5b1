package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
// Codes have the form TV-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "TV-AUTH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
// Two DomainErrors match when their codes are equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithDetailsf is WithDetails with a format string.
func (e *DomainError) WithDetailsf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the code of the first DomainError in err's chain,
// or "" when there is none.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Session Errors (AUTH)
// ============================================================================

var (
	// ErrAuthentication indicates the session exchange failed or returned
	// a response without a session id or license token.
	ErrAuthentication = NewDomainError("TV-AUTH-4010", "authentication failed")

	// ErrEntitlement indicates lossless media was requested without a
	// privileged session.
	ErrEntitlement = NewDomainError("TV-AUTH-4030", "lossless media requires a privileged credential")
)

// ============================================================================
// Media Errors (MEDIA)
// ============================================================================

var (
	// ErrUnavailableFormat indicates the asset offers no usable encoding.
	ErrUnavailableFormat = NewDomainError("TV-MEDIA-4040", "no usable encoding for asset")

	// ErrSourceResolution indicates the licensing endpoint refused the
	// request or returned no source URL.
	ErrSourceResolution = NewDomainError("TV-MEDIA-5020", "media source resolution failed")
)

// ============================================================================
// Catalogue Errors (CAT)
// ============================================================================

var (
	// ErrEntityNotFound indicates a catalogue lookup returned nothing.
	ErrEntityNotFound = NewDomainError("TV-CAT-4040", "catalogue entity not found")

	// ErrCatalogue indicates the catalogue gateway reported an error.
	ErrCatalogue = NewDomainError("TV-CAT-5000", "catalogue gateway error")
)

// ============================================================================
// System Errors (NET, SYS, ARG)
// ============================================================================

var (
	// ErrTransport indicates a network, status or decoding failure.
	ErrTransport = NewDomainError("TV-NET-5000", "transport error")

	// ErrCipher indicates the media cipher could not be constructed.
	ErrCipher = NewDomainError("TV-SYS-5001", "cipher error")

	// ErrInvalidReference indicates an entity reference could not be parsed.
	ErrInvalidReference = NewDomainError("TV-ARG-1001", "invalid entity reference")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = NewDomainError("TV-ARG-1002", "invalid configuration")
)

// ============================================================================
// Stage Errors
// ============================================================================

// Pipeline stages reported by StageError.
const (
	StageSession = "session"
	StageResolve = "resolve"
	StageFetch   = "fetch"
	StageDecrypt = "decrypt"
)

// StageError records which pipeline stage failed for which asset.
type StageError struct {
	// AssetID is the asset the caller asked for.
	AssetID string
	// ResolvedID is the fallback asset substituted for it, if any.
	ResolvedID string
	Stage      string
	Err        error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.ResolvedID != "" {
		return fmt.Sprintf("asset %s (fallback %s): %s: %v", e.AssetID, e.ResolvedID, e.Stage, e.Err)
	}
	return fmt.Sprintf("asset %s: %s: %v", e.AssetID, e.Stage, e.Err)
}

// Unwrap returns the stage's underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}
