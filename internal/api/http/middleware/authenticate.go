package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okunev/usermgmt/internal/logger"
	"github.com/okunev/usermgmt/internal/model"
)

// AuthService resolves the principal from a bearer token.
type AuthService interface {
	ResolvePrincipal(ctx context.Context, tokenString string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the principal
// into request context. All token failures collapse into a single
// unauthenticated response; the specific cause is only logged.
type Authenticate struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authService: authService, contextManager: contextManager, logger: logger}
}

// Handle wraps next, requiring a valid Authorization: Bearer token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			unauthorized(w, "missing authorization token")
			return
		}

		principal, err := m.authService.ResolvePrincipal(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: principal resolution failed",
				"path", r.URL.Path,
				"error", err.Error())
			unauthorized(w, "invalid authorization token")
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
