package session

// Status is the session's position in its lifecycle.
type Status string

const (
	// StatusAnonymous is the default: no credential, no profile.
	StatusAnonymous Status = "anonymous"
	// StatusAuthenticating means a login call is in flight.
	StatusAuthenticating Status = "authenticating"
	// StatusAuthenticated means a credential is held and usable.
	StatusAuthenticated Status = "authenticated"
	// StatusAuthError means the last login attempt failed.
	StatusAuthError Status = "auth_error"
)

// Snapshot is the observable, in-memory view of the session that consumers
// read and re-render from. It is always handed out by value; only the
// Manager mutates the underlying state.
type Snapshot struct {
	Status        Status
	Authenticated bool
	FirstName     string
	LastName      string
	HasProfile    bool
	LastError     string
}

// DisplayName renders the cached profile name, or an empty string when no
// profile has been fetched yet.
func (s Snapshot) DisplayName() string {
	if !s.HasProfile {
		return ""
	}
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
