// Package mockapi is a development stand-in for the Argent Bank backend.
// It implements only the three endpoints the client consumes (login,
// profile read, profile write) with the same JSON envelope and bearer-auth
// behavior, so the client can be exercised end to end without the real
// service.
package mockapi

import (
	"context"
	"time"

	"github.com/argentbank/argentctl/internal/logging"
)

const defaultTokenTTL = 24 * time.Hour

// Server holds the seeded users and the signing secret for issued tokens.
type Server struct {
	users    *UserStore
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
}

// NewServer builds a Server with the classic demo accounts seeded.
func NewServer(secret []byte, log logging.Logger) (*Server, error) {
	s := &Server{
		users:    NewUserStore(),
		secret:   secret,
		tokenTTL: defaultTokenTTL,
		log:      log,
	}

	seed := []struct {
		email, password, first, last string
	}{
		{"tony@stark.com", "password123", "Tony", "Stark"},
		{"steve@rogers.com", "password456", "Steve", "Rogers"},
	}
	for _, u := range seed {
		if _, err := s.users.Add(u.email, u.password, u.first, u.last); err != nil {
			return nil, err
		}
	}

	log.Info(context.Background(), "mock backend seeded", "users", len(seed))
	return s, nil
}
