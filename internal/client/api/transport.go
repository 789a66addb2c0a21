package api

import (
	"context"
	"net/http"

	"github.com/argentbank/argentctl/internal/common"
)

// TokenSource yields the current bearer credential. An empty string means
// no credential is held and the request goes out unauthenticated.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
}

// bearerTransport attaches the stored credential to every outgoing request.
// It is the single interception point: no call site sets the Authorization
// header itself.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	credential, err := t.tokens.Load(req.Context())
	if err != nil || credential == "" {
		// A broken or empty store means the request is anonymous. Endpoints
		// that need auth will answer 401 and the caller reacts to that.
		return t.base.RoundTrip(req)
	}

	// RoundTrippers must not mutate the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set(common.AuthorizationHeader, common.BearerPrefix+credential)
	return t.base.RoundTrip(clone)
}
