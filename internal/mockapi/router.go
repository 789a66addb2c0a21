package mockapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the HTTP route table for the mock backend.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/user/login", s.handleLogin).Methods(http.MethodPost)
	api.Handle("/user/profile", s.requireAuth(http.HandlerFunc(s.handleProfile))).Methods(http.MethodPost)
	api.Handle("/user/profile", s.requireAuth(http.HandlerFunc(s.handleUpdateProfile))).Methods(http.MethodPut)

	return r
}
