// Package session owns the client's session lifecycle: login, logout,
// profile fetch and update, and the observable state those operations
// project for the UI.
//
// The Manager is the single writer of Session state. Operations of the same
// kind never overlap: a second concurrent call is rejected with
// ErrOperationPending. Each attempt is stamped, and a result whose stamp no
// longer matches the current attempt is discarded, so a slow call can never
// overwrite state with a stale outcome (e.g. a profile fetch resolving after
// logout).
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/argentbank/argentctl/internal/client/api"
	"github.com/argentbank/argentctl/internal/client/tokenstore"
	"github.com/argentbank/argentctl/internal/common"
	"github.com/argentbank/argentctl/internal/logging"
	"github.com/google/uuid"
)

// ErrOperationPending is returned when an operation of the same kind is
// already in flight.
var ErrOperationPending = errors.New("operation already in progress")

type opKind string

const (
	opLogin  opKind = "login"
	opFetch  opKind = "fetch_profile"
	opUpdate opKind = "update_profile"
)

// Manager coordinates session operations against the API client and the
// credential store, and publishes every state change to subscribers.
type Manager struct {
	client api.Client
	tokens tokenstore.Repository
	log    logging.Logger

	mu       sync.Mutex
	state    Snapshot
	inflight map[opKind]string
	subs     map[int]func(Snapshot)
	nextSub  int
}

// NewManager constructs a Manager in the anonymous state.
func NewManager(client api.Client, tokens tokenstore.Repository, log logging.Logger) *Manager {
	return &Manager{
		client:   client,
		tokens:   tokens,
		log:      log,
		state:    Snapshot{Status: StatusAnonymous},
		inflight: make(map[opKind]string),
		subs:     make(map[int]func(Snapshot)),
	}
}

// Current returns the session state as of now.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to be called with a copy of the state after every
// mutation. The returned function cancels the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Login authenticates with the backend. On success the issued credential is
// persisted and the session becomes authenticated; on failure the credential
// store is left untouched and the backend's message lands in LastError.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	attempt, err := m.begin(opLogin, func(s *Snapshot) {
		s.Status = StatusAuthenticating
	})
	if err != nil {
		return err
	}

	token, err := m.client.Login(ctx, email, password)

	return m.settle(opLogin, attempt, func(s *Snapshot) error {
		if err != nil {
			s.Status = StatusAuthError
			s.Authenticated = false
			s.LastError = errorMessage(err)
			m.log.Warn(ctx, "login failed", "error", err)
			return err
		}

		if saveErr := m.tokens.Save(ctx, token); saveErr != nil {
			// Without a persisted credential the session cannot be
			// considered authenticated.
			s.Status = StatusAuthError
			s.Authenticated = false
			s.LastError = saveErr.Error()
			m.log.Error(ctx, "failed to persist credential", "error", saveErr)
			return saveErr
		}

		s.Status = StatusAuthenticated
		s.Authenticated = true
		s.LastError = ""
		m.log.Info(ctx, "login succeeded", "email", email)
		return nil
	})
}

// Logout clears the stored credential and resets the session to anonymous.
// It always succeeds locally: a failing store is logged, not propagated.
// Any in-flight operation is invalidated so its late result is discarded.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear credential store", "error", err)
	}

	m.mu.Lock()
	for k := range m.inflight {
		delete(m.inflight, k)
	}
	m.state = Snapshot{Status: StatusAnonymous}
	snap, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.log.Info(ctx, "logged out")
	publish(snap, subs)
}

// FetchProfile reads the profile from the backend and caches the display
// name. With no stored credential it makes no network call, leaves state
// unchanged, and reports common.ErrMissingCredential. A backend failure
// records LastError but never deauthenticates: a transient fetch error is
// not a logout.
func (m *Manager) FetchProfile(ctx context.Context) error {
	attempt, err := m.begin(opFetch, nil)
	if err != nil {
		return err
	}

	credential, loadErr := m.tokens.Load(ctx)
	if loadErr != nil || credential == "" {
		m.abandon(opFetch, attempt)
		if loadErr != nil {
			m.log.Warn(ctx, "credential store unavailable", "error", loadErr)
		}
		return common.ErrMissingCredential
	}

	profile, err := m.client.FetchProfile(ctx)

	return m.settle(opFetch, attempt, func(s *Snapshot) error {
		if err != nil {
			s.LastError = errorMessage(err)
			m.log.Warn(ctx, "profile fetch failed", "error", err)
			return err
		}

		s.FirstName = profile.FirstName
		s.LastName = profile.LastName
		s.HasProfile = true
		s.LastError = ""
		return nil
	})
}

// UpdateProfile writes both name fields to the backend. On success the
// submitted values are written through to the cached profile; on failure
// the previously cached profile stays untouched.
func (m *Manager) UpdateProfile(ctx context.Context, firstName, lastName string) error {
	attempt, err := m.begin(opUpdate, nil)
	if err != nil {
		return err
	}

	credential, loadErr := m.tokens.Load(ctx)
	if loadErr != nil || credential == "" {
		m.abandon(opUpdate, attempt)
		if loadErr != nil {
			m.log.Warn(ctx, "credential store unavailable", "error", loadErr)
		}
		return common.ErrMissingCredential
	}

	_, err = m.client.UpdateProfile(ctx, firstName, lastName)

	return m.settle(opUpdate, attempt, func(s *Snapshot) error {
		if err != nil {
			s.LastError = errorMessage(err)
			m.log.Warn(ctx, "profile update failed", "error", err)
			return err
		}

		s.FirstName = firstName
		s.LastName = lastName
		s.HasProfile = true
		s.LastError = ""
		m.log.Info(ctx, "profile updated", "firstName", firstName, "lastName", lastName)
		return nil
	})
}

// begin registers a new attempt for kind and optionally applies a state
// mutation (published to subscribers). It fails with ErrOperationPending if
// an attempt of the same kind is already registered.
func (m *Manager) begin(kind opKind, mutate func(*Snapshot)) (string, error) {
	m.mu.Lock()
	if m.inflight[kind] != "" {
		m.mu.Unlock()
		return "", ErrOperationPending
	}
	attempt := uuid.NewString()
	m.inflight[kind] = attempt

	var snap Snapshot
	var subs []func(Snapshot)
	if mutate != nil {
		mutate(&m.state)
		snap, subs = m.snapshotLocked()
	}
	m.mu.Unlock()

	if mutate != nil {
		publish(snap, subs)
	}
	return attempt, nil
}

// abandon releases an attempt without touching state.
func (m *Manager) abandon(kind opKind, attempt string) {
	m.mu.Lock()
	if m.inflight[kind] == attempt {
		delete(m.inflight, kind)
	}
	m.mu.Unlock()
}

// settle applies the outcome of an attempt. If the attempt was superseded
// (logout raced it), the outcome is discarded and settle returns nil.
func (m *Manager) settle(kind opKind, attempt string, apply func(*Snapshot) error) error {
	m.mu.Lock()
	if m.inflight[kind] != attempt {
		m.mu.Unlock()
		return nil
	}
	delete(m.inflight, kind)

	err := apply(&m.state)
	snap, subs := m.snapshotLocked()
	m.mu.Unlock()

	publish(snap, subs)
	return err
}

func (m *Manager) snapshotLocked() (Snapshot, []func(Snapshot)) {
	subs := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return m.state, subs
}

func publish(snap Snapshot, subs []func(Snapshot)) {
	for _, fn := range subs {
		fn(snap)
	}
}

// errorMessage prefers the backend's own message over Go error text so the
// UI shows what the service actually said.
func errorMessage(err error) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return err.Error()
}
