// Package common defines shared constants and sentinel errors used across
// argentctl components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrInvalidToken indicates a credential that is present but cannot be
	// decoded. It is recoverable: the stored credential is left intact.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingCredential indicates an authenticated operation was attempted
	// with no stored credential. The operation is a no-op.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUnauthorized indicates the backend rejected the stored credential.
	ErrUnauthorized = errors.New("unauthorized")
)
