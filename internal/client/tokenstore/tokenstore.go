// Package tokenstore persists the single bearer credential that proves the
// user's identity to the backend.
//
// At most one credential is held at a time. An absent credential means the
// client is anonymous; Load reports absence as an empty string with a nil
// error so callers can branch without error plumbing. Storage failures are
// returned for logging but must be treated by callers as "no credential",
// never as a fatal condition.
package tokenstore

import "context"

// Repository stores the current bearer credential.
type Repository interface {
	// Save persists the credential, overwriting any prior value.
	Save(ctx context.Context, credential string) error

	// Load returns the persisted credential, or an empty string when none
	// was ever saved or it was cleared.
	Load(ctx context.Context) (string, error)

	// Clear removes the credential; subsequent Load calls return empty.
	Clear(ctx context.Context) error
}
