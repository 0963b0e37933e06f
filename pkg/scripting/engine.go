package scripting

import (
	"context"
	"errors"
)

// ErrFunctionNotFound is returned by ExecuteFunction when no loaded script
// defines a function with the requested name.
var ErrFunctionNotFound = errors.New("lua function not found")

// Engine runs operator-supplied Lua scripts that extend the advisor's
// rule tables without recompiling.
type Engine interface {
	// LoadScript loads a named Lua script from memory.
	LoadScript(name string, content []byte) error

	// LoadScriptFile loads a Lua script from a file path.
	LoadScriptFile(path string) error

	// LoadScriptDir loads every *.lua file in a directory.
	LoadScriptDir(dir string) error

	// ExecuteFunction calls a previously loaded Lua function. Arguments and
	// the return value are converted between Go and Lua representations.
	ExecuteFunction(ctx context.Context, funcName string, args ...interface{}) (interface{}, error)

	// Close releases the underlying Lua state.
	Close() error
}

// Config contains options for the scripting engine.
type Config struct {
	// EnableSandboxing removes os, io, require and friends from the Lua state
	EnableSandboxing bool `yaml:"enable_sandboxing"`

	// ScriptTimeoutMs bounds a single function call in milliseconds
	ScriptTimeoutMs int `yaml:"script_timeout_ms"`
}

// DefaultConfig returns the default scripting configuration.
func DefaultConfig() Config {
	return Config{
		EnableSandboxing: true,
		ScriptTimeoutMs:  1000,
	}
}
