package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/argentbank/argentctl/internal/common"
)

type contextKey string

const userIDKey contextKey = "userID"

// envelope mirrors the real backend's uniform response wrapper.
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Body    any    `json:"body,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Status: status, Message: message, Body: body})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileBody struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func profileOf(u *User) profileBody {
	return profileBody{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "Error: invalid request body", nil)
		return
	}

	u, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			writeJSON(w, http.StatusBadRequest, "Error: User not found!", nil)
		case errors.Is(err, ErrInvalidPassword):
			writeJSON(w, http.StatusBadRequest, "Error: Password is invalid", nil)
		default:
			writeJSON(w, http.StatusInternalServerError, "Error: internal error", nil)
		}
		s.log.Warn(r.Context(), "login rejected", "email", req.Email, "error", err)
		return
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, "Error: could not issue token", nil)
		s.log.Error(r.Context(), "token issue failed", "error", err)
		return
	}

	writeJSON(w, http.StatusOK, "User successfully logged in", map[string]string{"token": token})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := s.users.Get(userIDFrom(r))
	if !ok {
		writeJSON(w, http.StatusNotFound, "Error: User not found!", nil)
		return
	}
	writeJSON(w, http.StatusOK, "Successfully got user profile data", profileOf(u))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "Error: invalid request body", nil)
		return
	}

	u, ok := s.users.SetName(userIDFrom(r), req.FirstName, req.LastName)
	if !ok {
		writeJSON(w, http.StatusNotFound, "Error: User not found!", nil)
		return
	}
	writeJSON(w, http.StatusOK, "Successfully updated user profile", profileOf(u))
}

// requireAuth extracts and validates the bearer token, putting the user ID
// on the request context. Missing or invalid credentials answer 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(common.AuthorizationHeader)
		if !strings.HasPrefix(authHeader, common.BearerPrefix) {
			writeJSON(w, http.StatusUnauthorized, "Error: missing bearer token", nil)
			return
		}

		userID, err := s.parseToken(strings.TrimPrefix(authHeader, common.BearerPrefix))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, "Error: invalid token", nil)
			s.log.Warn(r.Context(), "token rejected", "error", err)
			return
		}

		ctx := contextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
