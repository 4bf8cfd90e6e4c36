// Package router assembles the HTTP API surface.
package router

import (
	"context"
	"net/http"

	"github.com/okunev/usermgmt/internal/api/http/handler"
	"github.com/okunev/usermgmt/internal/api/http/middleware"
	"github.com/okunev/usermgmt/internal/logger"
	"github.com/okunev/usermgmt/internal/model"
)

// Pinger reports persistence liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AuthService combines the auth operations the handlers and the
// authenticate middleware consume.
type AuthService interface {
	handler.AuthService
	middleware.AuthService
}

// Router wires handlers and middleware into one http.Handler.
type Router struct {
	authService    AuthService
	userService    handler.UserService
	contextManager model.ContextManager
	pinger         Pinger
	logger         *logger.Logger
}

// New creates a Router over the given services.
func New(
	authService AuthService,
	userService handler.UserService,
	contextManager model.ContextManager,
	pinger Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		contextManager: contextManager,
		pinger:         pinger,
		logger:         logger,
	}
}

// Register builds the route table. Login and registration are open;
// every other user route requires a resolved principal.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)
	logging := middleware.NewLogging(r.logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", r.health)
	mux.HandleFunc("POST /api/v1/token", authHandler.Login)
	mux.HandleFunc("POST /api/v1/users", userHandler.Register)

	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(h)
	}

	mux.Handle("GET /api/v1/users", protected(userHandler.List))
	mux.Handle("GET /api/v1/users/me", protected(userHandler.Me))
	mux.Handle("GET /api/v1/users/{id}", protected(userHandler.Get))
	mux.Handle("PUT /api/v1/users/{id}", protected(userHandler.Update))
	mux.Handle("DELETE /api/v1/users/{id}", protected(userHandler.Delete))
	mux.Handle("PUT /api/v1/users/{id}/avatar", protected(userHandler.UploadAvatar))
	mux.Handle("GET /api/v1/users/{id}/avatar", protected(userHandler.DownloadAvatar))

	return logging.Handle(mux)
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	if r.pinger != nil {
		if err := r.pinger.Ping(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
