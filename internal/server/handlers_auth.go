package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/server/middleware"
)

type authRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  *db.User `json:"user"`
}

// handleRegister creates an account and returns a token
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.db.GetUserByEmail(r.Context(), email)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to check email")
		return
	}
	if existing != nil {
		s.serviceError(w, &ErrEmailAlreadyExists{Email: email})
		return
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := s.db.CreateUser(r.Context(), email, hash)
	if err != nil {
		// a concurrent registration can still hit the unique index
		s.serviceError(w, &ErrEmailAlreadyExists{Email: email})
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// handleLogin verifies credentials and returns a token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		s.errorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.db.GetUserByEmail(r.Context(), email)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil || !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		s.serviceError(w, &ErrInvalidCredentials{})
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, authResponse{Token: token, User: user})
}

// handleMe returns the account behind the presented token. A valid token
// for a deleted account is rejected.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.db.GetUserByID(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusUnauthorized, "account no longer exists")
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}
