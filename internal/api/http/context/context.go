// Package context carries the authenticated username through the request
// context between the authentication middleware and handlers.
package context

import "context"

type contextKey string

const usernameKey contextKey = "username"

// Manager implements model.ContextManager over context values.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUsernameToContext returns a child context carrying the username.
func (m *Manager) SetUsernameToContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsernameFromContext retrieves the username set by the
// authentication middleware, reporting false when absent.
func (m *Manager) GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
