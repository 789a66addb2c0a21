package mockapi

import (
	"fmt"
	"time"

	"github.com/argentbank/argentctl/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims mirrors the claim shape the real backend issues: the
// registered claims plus the user ID under "id".
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

func (s *Server) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}

// parseToken validates the signature and expiry and returns the user ID.
func (s *Server) parseToken(tokenString string) (string, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
