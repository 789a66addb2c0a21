package mockapi

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// User is a seeded demo account. Passwords are stored as bcrypt hashes.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
}

// UserStore is an in-memory user registry, safe for concurrent use.
type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*User
	byID    map[string]*User
}

func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

// Add registers a user with a bcrypt-hashed password.
func (s *UserStore) Add(email, password, firstName, lastName string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}

	s.mu.Lock()
	s.byEmail[email] = u
	s.byID[u.ID] = u
	s.mu.Unlock()
	return u, nil
}

// Authenticate verifies email and password, returning the matching user.
func (s *UserStore) Authenticate(email, password string) (*User, error) {
	s.mu.RLock()
	u, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return u, nil
}

// Get looks a user up by ID.
func (s *UserStore) Get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	return u, ok
}

// SetName updates both name fields and returns the updated user.
func (s *UserStore) SetName(id, firstName, lastName string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	u.FirstName = firstName
	u.LastName = lastName
	return u, true
}
