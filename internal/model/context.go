package model

import "context"

// ContextManager moves the authenticated username between middleware and
// handlers through the request context.
type ContextManager interface {
	SetUsernameToContext(ctx context.Context, username string) context.Context
	GetUsernameFromContext(ctx context.Context) (string, bool)
}
