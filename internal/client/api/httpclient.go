package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxResponseBytes = 1 << 20

// HTTPClient is the concrete Client against the Argent Bank HTTP API
// (base path /api/v1). Token injection happens in its transport, uniformly
// for every request.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client against baseURL (e.g.
// "http://localhost:3001/api/v1"). tokens supplies the bearer credential for
// the interception stage; timeout bounds each request end to end.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{base: http.DefaultTransport, tokens: tokens},
		},
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

type loginBody struct {
	Token string `json:"token"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}

	env, err := c.doRequest(ctx, http.MethodPost, "/user/login", payload)
	if err != nil {
		return "", err
	}

	var body loginBody
	if len(env.Body) > 0 {
		if err := json.Unmarshal(env.Body, &body); err != nil {
			return "", fmt.Errorf("failed to decode login response: %w", err)
		}
	}
	if body.Token == "" {
		return "", ErrMissingToken
	}
	return body.Token, nil
}

func (c *HTTPClient) FetchProfile(ctx context.Context) (Profile, error) {
	env, err := c.doRequest(ctx, http.MethodPost, "/user/profile", nil)
	if err != nil {
		return Profile{}, err
	}
	return decodeProfile(env)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, firstName, lastName string) (Profile, error) {
	payload := Profile{FirstName: firstName, LastName: lastName}

	env, err := c.doRequest(ctx, http.MethodPut, "/user/profile", payload)
	if err != nil {
		return Profile{}, err
	}
	return decodeProfile(env)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func decodeProfile(env *envelope) (Profile, error) {
	var p Profile
	if len(env.Body) == 0 {
		return p, fmt.Errorf("empty profile response body")
	}
	if err := json.Unmarshal(env.Body, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return p, nil
}

// doRequest performs one JSON request against the backend. Transport-level
// failures map to ErrUnavailable; non-2xx statuses map to *RequestError with
// the raw payload preserved.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string, payload any) (*envelope, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	// The payload may not be valid JSON on errors; keep the raw bytes either way.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Body:       string(raw),
		}
	}

	return &env, nil
}
