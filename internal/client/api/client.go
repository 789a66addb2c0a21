package api

import "context"

// Profile is the user's display name as known to the backend. The backend
// is authoritative; the session layer only caches a copy.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Client is the transport-agnostic contract for talking to the Argent Bank
// backend. All methods honor context cancellation and timeouts.
type Client interface {
	Close() error

	// Login authenticates with the backend and returns the issued bearer
	// credential. A 2xx response without a token is an error: the caller
	// must never be told login succeeded without a usable credential.
	Login(ctx context.Context, email, password string) (string, error)

	// FetchProfile reads the current profile. Requires a stored credential;
	// the transport attaches it automatically.
	FetchProfile(ctx context.Context) (Profile, error)

	// UpdateProfile writes both name fields and returns the profile as the
	// backend now holds it.
	UpdateProfile(ctx context.Context, firstName, lastName string) (Profile, error)
}
