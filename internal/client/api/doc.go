// Package api contains the client-side API surface for the Argent Bank
// backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     three consumed operations: Login, FetchProfile, UpdateProfile.
//  2. A concrete HTTP implementation (see HTTPClient) that speaks the
//     backend's JSON envelope and injects the stored bearer credential into
//     every outgoing request through a single http.RoundTripper stage.
//
// # Error Handling
//
// Transport failures surface as ErrUnavailable; non-2xx responses surface as
// *RequestError carrying the status and the raw backend payload. A login
// response without a token surfaces as ErrMissingToken. Authorization
// failures additionally match common.ErrUnauthorized via errors.Is.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation and timeouts.
package api
