package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/argentbank/argentctl/internal/client/api"
	"github.com/argentbank/argentctl/internal/client/tokenstore"
	"github.com/argentbank/argentctl/internal/common"
	"github.com/argentbank/argentctl/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

// fakeClient implements api.Client for Manager unit tests.
type fakeClient struct {
	mu sync.Mutex

	LoginToken string
	LoginErr   error
	LoginBlock chan struct{} // when non-nil, Login waits until closed

	Profile    api.Profile
	FetchErr   error
	FetchBlock chan struct{}

	UpdateErr error

	LoginCalls  int
	FetchCalls  int
	UpdateCalls int

	LastLoginEmail    string
	LastLoginPassword string
	LastUpdate        api.Profile
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	block := f.LoginBlock
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) FetchProfile(ctx context.Context) (api.Profile, error) {
	f.mu.Lock()
	f.FetchCalls++
	block := f.FetchBlock
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.Profile, f.FetchErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, firstName, lastName string) (api.Profile, error) {
	f.mu.Lock()
	f.UpdateCalls++
	f.LastUpdate = api.Profile{FirstName: firstName, LastName: lastName}
	f.mu.Unlock()
	if f.UpdateErr != nil {
		return api.Profile{}, f.UpdateErr
	}
	return api.Profile{FirstName: firstName, LastName: lastName}, nil
}

// ---- helpers ----

func newManager(t *testing.T, c *fakeClient) (*Manager, *tokenstore.MemoryRepository) {
	t.Helper()
	tokens := tokenstore.NewMemoryRepository()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewManager(c, tokens, log), tokens
}

func storedToken(t *testing.T, tokens tokenstore.Repository) string {
	t.Helper()
	got, err := tokens.Load(context.Background())
	require.NoError(t, err)
	return got
}

// ---- tests ----

func TestLogin_Success(t *testing.T) {
	c := &fakeClient{LoginToken: "abc.def.ghi"}
	m, tokens := newManager(t, c)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "jane@x.com", "pw"))

	assert.Equal(t, "abc.def.ghi", storedToken(t, tokens))
	snap := m.Current()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.True(t, snap.Authenticated)
	assert.Empty(t, snap.LastError)
	assert.Equal(t, "jane@x.com", c.LastLoginEmail)
}

func TestLogin_BackendFailure_LeavesStoreUntouched(t *testing.T) {
	c := &fakeClient{LoginErr: &api.RequestError{
		StatusCode: http.StatusBadRequest,
		Message:    "Error: User not found!",
	}}
	m, tokens := newManager(t, c)
	ctx := context.Background()

	require.NoError(t, tokens.Save(ctx, "prior-token"))

	err := m.Login(ctx, "nobody@x.com", "pw")
	require.Error(t, err)

	assert.Equal(t, "prior-token", storedToken(t, tokens), "failed login must not touch the store")
	snap := m.Current()
	assert.Equal(t, StatusAuthError, snap.Status)
	assert.False(t, snap.Authenticated)
	assert.Equal(t, "Error: User not found!", snap.LastError)
}

func TestLogin_MissingTokenInResponse(t *testing.T) {
	c := &fakeClient{LoginErr: api.ErrMissingToken}
	m, tokens := newManager(t, c)
	ctx := context.Background()

	err := m.Login(ctx, "jane@x.com", "pw")
	require.ErrorIs(t, err, api.ErrMissingToken)

	assert.Empty(t, storedToken(t, tokens))
	snap := m.Current()
	assert.False(t, snap.Authenticated)
	assert.Equal(t, "missing token in API response", snap.LastError)
}

func TestLogin_RetryAfterAuthError(t *testing.T) {
	c := &fakeClient{LoginErr: &api.RequestError{StatusCode: http.StatusBadRequest, Message: "nope"}}
	m, tokens := newManager(t, c)
	ctx := context.Background()

	require.Error(t, m.Login(ctx, "jane@x.com", "bad"))
	require.Equal(t, StatusAuthError, m.Current().Status)

	c.LoginErr = nil
	c.LoginToken = "abc.def.ghi"
	require.NoError(t, m.Login(ctx, "jane@x.com", "pw"))

	snap := m.Current()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Empty(t, snap.LastError, "a successful login must clear the prior error")
	assert.Equal(t, "abc.def.ghi", storedToken(t, tokens))
}

func TestLogout_AlwaysResetsToAnonymous(t *testing.T) {
	c := &fakeClient{LoginToken: "abc.def.ghi", Profile: api.Profile{FirstName: "Jane", LastName: "Doe"}}
	m, tokens := newManager(t, c)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "jane@x.com", "pw"))
	require.NoError(t, m.FetchProfile(ctx))

	m.Logout(ctx)

	assert.Empty(t, storedToken(t, tokens))
	snap := m.Current()
	assert.Equal(t, StatusAnonymous, snap.Status)
	assert.False(t, snap.Authenticated)
	assert.False(t, snap.HasProfile)
	assert.Empty(t, snap.DisplayName())
}

func TestFetchProfile_Unauthenticated_NoNetworkCall(t *testing.T) {
	c := &fakeClient{}
	m, _ := newManager(t, c)

	before := m.Current()
	err := m.FetchProfile(context.Background())
	require.ErrorIs(t, err, common.ErrMissingCredential)

	assert.Zero(t, c.FetchCalls, "no network call may be made without a credential")
	assert.Equal(t, before, m.Current(), "state must be unchanged")
}

func TestFetchProfile_Success(t *testing.T) {
	c := &fakeClient{LoginToken: "abc.def.ghi", Profile: api.Profile{FirstName: "Tony", LastName: "Stark"}}
	m, _ := newManager(t, c)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "tony@stark.com", "pw"))
	require.NoError(t, m.FetchProfile(ctx))

	snap := m.Current()
	assert.Equal(t, "Tony", snap.FirstName)
	assert.Equal(t, "Stark", snap.LastName)
	assert.Equal(t, "Tony Stark", snap.DisplayName())
	assert.Empty(t, snap.LastError)
}

func TestFetchProfile_FailureDoesNotDeauthenticate(t *testing.T) {
	c := &fakeClient{LoginToken: "abc.def.ghi"}
	m, _ := newManager(t, c)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "jane@x.com", "pw"))

	c.FetchErr = &api.RequestError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	err := m.FetchProfile(ctx)
	require.Error(t, err)

	snap := m.Current()
	assert.True(t, snap.Authenticated, "a transient fetch failure is not deauthentication")
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Equal(t, "boom", snap.LastError)
}

func TestUpdateProfile_Success_WritesThrough(t *testing.T) {
	c := &fakeClient{LoginToken: "abc.def.ghi"}
	m, _ := newManager(t, c)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "jane@x.com", "pw"))
	require.NoError(t, m.UpdateProfile(ctx, "Jane", "Doe"))

	snap := m.Current()
	assert.Equal(t, "Jane", snap.FirstName)
	assert.Equal(t, "Doe", snap.LastName)
	assert.Equal(t, api.Profile{FirstName: "Jane", LastName: "Doe"}, c.LastUpdate)
}

func TestUpdateProfile_FailureKeepsCachedProfile(t *testing.T) {
	c := &fakeClient{LoginToken: "abc.def.ghi", Profile: api.Profile{FirstName: "Tony", LastName: "Stark"}}
	m, _ := newManager(t, c)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "tony@stark.com", "pw"))
	require.NoError(t, m.FetchProfile(ctx))

	c.UpdateErr = &api.RequestError{StatusCode: http.StatusInternalServerError, Message: "write failed"}
	err := m.UpdateProfile(ctx, "New", "Name")
	require.Error(t, err)

	snap := m.Current()
	assert.Equal(t, "Tony", snap.FirstName, "failed update must not apply partial state")
	assert.Equal(t, "Stark", snap.LastName)
	assert.Equal(t, "write failed", snap.LastError)
}

func TestUpdateProfile_Unauthenticated(t *testing.T) {
	c := &fakeClient{}
	m, _ := newManager(t, c)

	err := m.UpdateProfile(context.Background(), "Jane", "Doe")
	require.ErrorIs(t, err, common.ErrMissingCredential)
	assert.Zero(t, c.UpdateCalls)
}

func TestLogin_SecondConcurrentCallRejected(t *testing.T) {
	block := make(chan struct{})
	c := &fakeClient{LoginToken: "abc.def.ghi", LoginBlock: block}
	m, _ := newManager(t, c)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- m.Login(ctx, "jane@x.com", "pw") }()

	// Wait for the first attempt to register.
	require.Eventually(t, func() bool {
		return m.Current().Status == StatusAuthenticating
	}, time.Second, 5*time.Millisecond)

	err := m.Login(ctx, "jane@x.com", "pw")
	require.ErrorIs(t, err, ErrOperationPending)

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, StatusAuthenticated, m.Current().Status)
}

func TestFetchProfile_StaleResultDiscardedAfterLogout(t *testing.T) {
	block := make(chan struct{})
	c := &fakeClient{LoginToken: "abc.def.ghi", Profile: api.Profile{FirstName: "Jane", LastName: "Doe"}}
	m, _ := newManager(t, c)
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "jane@x.com", "pw"))

	c.FetchBlock = block
	done := make(chan error, 1)
	go func() { done <- m.FetchProfile(ctx) }()

	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.FetchCalls == 1
	}, time.Second, 5*time.Millisecond)

	m.Logout(ctx)
	close(block)

	require.NoError(t, <-done, "a superseded result settles silently")
	snap := m.Current()
	assert.Equal(t, StatusAnonymous, snap.Status, "stale fetch result must not overwrite logout")
	assert.False(t, snap.HasProfile)
}

func TestSubscribe_NotifiesOnEveryMutation(t *testing.T) {
	c := &fakeClient{LoginToken: "abc.def.ghi"}
	m, _ := newManager(t, c)
	ctx := context.Background()

	var mu sync.Mutex
	var seen []Status
	cancel := m.Subscribe(func(s Snapshot) {
		mu.Lock()
		seen = append(seen, s.Status)
		mu.Unlock()
	})

	require.NoError(t, m.Login(ctx, "jane@x.com", "pw"))

	mu.Lock()
	assert.Equal(t, []Status{StatusAuthenticating, StatusAuthenticated}, seen)
	mu.Unlock()

	cancel()
	m.Logout(ctx)

	mu.Lock()
	assert.Len(t, seen, 2, "cancelled subscriber must not be notified")
	mu.Unlock()
}

func TestErrorMessage_PrefersBackendMessage(t *testing.T) {
	assert.Equal(t, "nope", errorMessage(&api.RequestError{StatusCode: 400, Message: "nope"}))
	assert.Equal(t, "request failed: status 502", errorMessage(&api.RequestError{StatusCode: 502}))
	assert.Equal(t, "plain", errorMessage(errors.New("plain")))
}
