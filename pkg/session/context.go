package session

import (
	"context"
	"errors"
)

// ErrMissingSessionContext is returned by operations that require a session
// Context when none is present in the context.Context.
var ErrMissingSessionContext = errors.New("session context not found in context")

// contextKey is a private type for context keys to avoid collisions
type contextKey int

const (
	// sessionContextKey is the key for storing a session.Context in a context.Context
	sessionContextKey contextKey = iota
)

// ContextWithSessionID adds a session ID to a context.Context.
func ContextWithSessionID(ctx context.Context, sessionID ID) context.Context {
	return context.WithValue(ctx, sessionContextKey, Context{SessionID: sessionID})
}

// ContextWithSession adds a full session.Context to a context.Context.
func ContextWithSession(ctx context.Context, sessionCtx Context) context.Context {
	return context.WithValue(ctx, sessionContextKey, sessionCtx)
}

// GetSessionContext retrieves the session.Context from a context.Context.
// If no session.Context is found, it returns a zero-valued Context and false.
func GetSessionContext(ctx context.Context) (Context, bool) {
	sessionCtx, ok := ctx.Value(sessionContextKey).(Context)
	return sessionCtx, ok
}

// MustGetSessionContext retrieves the session.Context from a context.Context.
// Panics if no session.Context is found, so only use when you are sure one exists.
func MustGetSessionContext(ctx context.Context) Context {
	sessionCtx, ok := GetSessionContext(ctx)
	if !ok {
		panic("session.Context not found in context.Context")
	}
	return sessionCtx
}
