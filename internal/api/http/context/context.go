// Package context carries the request principal through request context.
package context

import (
	"context"

	"github.com/okunev/usermgmt/internal/model"
)

type principalKey struct{}

// Manager stores and retrieves the authenticated principal on a
// request context. The principal is read-only for the duration of
// the request.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a context carrying user as the principal.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// GetUserFromContext retrieves the principal set by SetUserToContext.
// The boolean reports whether a principal was present.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(principalKey{}).(model.User)
	return user, ok
}
