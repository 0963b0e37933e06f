package config

import (
	"github.com/insurevn/tetadvisor/pkg/log"
	"github.com/insurevn/tetadvisor/pkg/scripting"
)

// Config is the top-level configuration for the advisory engine.
type Config struct {
	// Phase is the active Tet season phase ("pre-tet", "tet-peak", "post-tet")
	Phase string `yaml:"phase"`

	// Profile selects a built-in demo profile, or is empty when the
	// profile comes from ProfilePath
	Profile string `yaml:"profile"`

	// ProfilePath loads the customer profile from a YAML file
	ProfilePath string `yaml:"profile_path"`

	// Knowledge configures the retrieval index
	Knowledge KnowledgeConfig `yaml:"knowledge"`

	// Memory configures short-term conversation memory
	Memory MemoryConfig `yaml:"memory"`

	// Generation configures the LLM backend for generative mode
	Generation GenerationConfig `yaml:"generation"`

	// Session configures snapshot persistence between sessions
	Session SessionConfig `yaml:"session"`

	// Scripting configures the Lua rule hooks
	Scripting ScriptingConfig `yaml:"scripting"`

	// Logging configures log output
	Logging log.Config `yaml:"logging"`
}

// KnowledgeConfig configures the retrieval index.
type KnowledgeConfig struct {
	// Backend selects the store implementation ("linear", "chromem")
	Backend string `yaml:"backend"`

	// TopK is the default number of search results
	TopK int `yaml:"top_k"`

	// RelevanceFloor filters weak matches out of assembled context
	RelevanceFloor float64 `yaml:"relevance_floor"`
}

// MemoryConfig configures short-term conversation memory.
type MemoryConfig struct {
	// Capacity is the maximum number of retained items
	Capacity int `yaml:"capacity"`

	// RecentWindow is how many items feed the assembled context
	RecentWindow int `yaml:"recent_window"`
}

// GenerationConfig configures the LLM backend.
type GenerationConfig struct {
	// Provider selects the backend ("mock", "openai", "gemini").
	// Empty means rule-only replies with no LLM at all.
	Provider string `yaml:"provider"`

	// OpenAI configures the OpenAI backend
	OpenAI OpenAIConfig `yaml:"openai"`

	// Gemini configures the Gemini backend
	Gemini GeminiConfig `yaml:"gemini"`
}

// OpenAIConfig configures the OpenAI backend.
type OpenAIConfig struct {
	// APIKey is the OpenAI API key
	APIKey string `yaml:"api_key"`

	// Model is the chat completion model
	Model string `yaml:"model"`

	// EmbeddingModel is the embeddings model
	EmbeddingModel string `yaml:"embedding_model"`

	// MaxTokens limits generated reply length
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls randomness (0.0-1.0)
	Temperature float64 `yaml:"temperature"`
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	// APIKey is the Gemini API key
	APIKey string `yaml:"api_key"`

	// Model is the generative model
	Model string `yaml:"model"`

	// EmbeddingModel is the embeddings model
	EmbeddingModel string `yaml:"embedding_model"`
}

// SessionConfig configures snapshot persistence.
type SessionConfig struct {
	// Store selects the backend ("boltdb", "sqlite", "none")
	Store string `yaml:"store"`

	// Path is the database file path
	Path string `yaml:"path"`
}

// ScriptingConfig configures the Lua rule hooks.
type ScriptingConfig struct {
	// Enabled turns the scripting engine on
	Enabled bool `yaml:"enabled"`

	// Paths is a list of directories containing Lua scripts
	Paths []string `yaml:"paths"`

	// Engine holds the engine-level options
	Engine scripting.Config `yaml:"engine"`
}

// DefaultConfig returns a configuration for rule-only operation with the
// built-in family demo profile.
func DefaultConfig() *Config {
	return &Config{
		Phase:   "pre-tet",
		Profile: "family",
		Knowledge: KnowledgeConfig{
			Backend:        "linear",
			TopK:           3,
			RelevanceFloor: 0.1,
		},
		Memory: MemoryConfig{
			Capacity:     10,
			RecentWindow: 5,
		},
		Session: SessionConfig{
			Store: "none",
		},
		Scripting: ScriptingConfig{
			Engine: scripting.DefaultConfig(),
		},
		Logging: log.DefaultConfig(),
	}
}
