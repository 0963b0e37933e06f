package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()

	assert.Len(t, string(a), 36)
	assert.NotEqual(t, a, b)
}

func TestNewContext(t *testing.T) {
	ctx := NewContext("sess-1", "cust-9")
	assert.Equal(t, ID("sess-1"), ctx.SessionID)
	assert.Equal(t, "cust-9", ctx.CustomerID)
}
