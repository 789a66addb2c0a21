// Package jwtx decodes the claims embedded in a bearer credential without
// contacting the server. Decoding is unverified on purpose: the backend is
// the only party that validates signatures, the client merely projects the
// claims for display and local bookkeeping.
package jwtx

import (
	"fmt"

	"github.com/argentbank/argentctl/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the set of claims carried by an Argent Bank credential: the
// registered JWT claims plus the user identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id,omitempty"`
}

// SubjectID returns the best available identity claim: the custom user ID
// if present, otherwise the registered subject.
func (c *Claims) SubjectID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// Decode parses the credential's claims without verifying the signature.
// It is a pure function: the same input always yields the same claims.
// A malformed credential yields an error matching common.ErrInvalidToken;
// Decode never panics and never touches the stored credential.
func Decode(credential string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}
