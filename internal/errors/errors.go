package errors

import (
	"errors"
	"fmt"
)

// Common error types for the gear tracker
var (
	// Authorization errors
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrStateMismatch       = errors.New("state mismatch")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrTokenRefreshFailed  = errors.New("token refresh failed")

	// Token store errors
	ErrNoToken        = errors.New("no token stored")
	ErrNoRefreshToken = errors.New("no refresh token stored")
	ErrNoIdentity     = errors.New("no identity stored")

	// Vendor API errors
	ErrFetchFailed = errors.New("fetch failed")

	// Request errors
	ErrValidationFailed = errors.New("validation failed")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
