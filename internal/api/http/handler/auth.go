package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/okunev/usermgmt/internal/logger"
)

// AuthService defines the login operation.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges username/password credentials for a bearer token.
// Accepts a JSON body or a form-encoded body. Unknown username and
// wrong password produce the same response.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLogin(w, r)
	if !ok {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	tokenString, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed", "username", req.Username)
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: tokenString, TokenType: "bearer"})
}

func (h *Auth) decodeLogin(w http.ResponseWriter, r *http.Request) (loginRequest, bool) {
	var req loginRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") || strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return req, false
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
		return req, true
	}

	if !decodeBody(w, r, &req) {
		return req, false
	}
	return req, true
}
