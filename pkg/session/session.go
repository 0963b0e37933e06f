package session

import "github.com/google/uuid"

// ID represents a unique identifier for a chat session.
// Each session owns exactly one short-term memory buffer and one
// customer profile; the advisory core never shares state across sessions.
type ID string

// NewID returns a fresh random session identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// Context holds information about the current session and customer.
type Context struct {
	// SessionID is mandatory and scopes memory ownership
	SessionID ID

	// CustomerID optionally identifies the customer the session belongs to
	CustomerID string
}

// NewContext creates a new Context with the specified session ID and optional customer ID.
func NewContext(sessionID ID, customerID string) Context {
	return Context{
		SessionID:  sessionID,
		CustomerID: customerID,
	}
}
