package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from a byte slice, applies environment
// overrides and validates the result.
func LoadFromBytes(data []byte) (*Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvironmentOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvironmentOverrides applies environment variable overrides.
func applyEnvironmentOverrides(config *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Generation.OpenAI.APIKey = apiKey
	}

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Generation.Gemini.APIKey = apiKey
	}

	if phase := os.Getenv("TETADVISOR_PHASE"); phase != "" {
		config.Phase = phase
	}

	if path := os.Getenv("TETADVISOR_SESSION_PATH"); path != "" {
		config.Session.Path = path
	}
}

// validateConfig validates the configuration and fills in defaults for
// fields left zero.
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Phase) {
	case "pre-tet", "pre", "tet-peak", "peak", "post-tet", "post":
	default:
		return fmt.Errorf("unsupported phase: %s", config.Phase)
	}

	switch strings.ToLower(config.Knowledge.Backend) {
	case "", "linear":
		config.Knowledge.Backend = "linear"
	case "chromem":
	default:
		return fmt.Errorf("unsupported knowledge backend: %s", config.Knowledge.Backend)
	}
	if config.Knowledge.TopK <= 0 {
		config.Knowledge.TopK = 3
	}
	if config.Knowledge.RelevanceFloor < 0 || config.Knowledge.RelevanceFloor >= 1 {
		config.Knowledge.RelevanceFloor = 0.1
	}

	if config.Memory.Capacity <= 0 {
		config.Memory.Capacity = 10
	}
	if config.Memory.RecentWindow <= 0 {
		config.Memory.RecentWindow = 5
	}
	if config.Memory.RecentWindow > config.Memory.Capacity {
		config.Memory.RecentWindow = config.Memory.Capacity
	}

	switch strings.ToLower(config.Generation.Provider) {
	case "", "mock":
	case "openai":
		if config.Generation.OpenAI.Model == "" {
			config.Generation.OpenAI.Model = "gpt-4o-mini"
		}
		if config.Generation.OpenAI.EmbeddingModel == "" {
			config.Generation.OpenAI.EmbeddingModel = "text-embedding-3-small"
		}
		if config.Generation.OpenAI.MaxTokens <= 0 {
			config.Generation.OpenAI.MaxTokens = 1024
		}
		// Zero means unset; a deliberate temperature of 0 is not supported
		// through config, the adapters accept it programmatically.
		if config.Generation.OpenAI.Temperature <= 0 || config.Generation.OpenAI.Temperature > 1.0 {
			config.Generation.OpenAI.Temperature = 0.7
		}
	case "gemini":
		if config.Generation.Gemini.Model == "" {
			config.Generation.Gemini.Model = "gemini-2.5-flash"
		}
	default:
		return fmt.Errorf("unsupported generation provider: %s", config.Generation.Provider)
	}

	switch strings.ToLower(config.Session.Store) {
	case "", "none":
		config.Session.Store = "none"
	case "boltdb", "sqlite":
		if config.Session.Path == "" {
			return fmt.Errorf("session path is required for %s session store", config.Session.Store)
		}
	default:
		return fmt.Errorf("unsupported session store: %s", config.Session.Store)
	}

	if config.Scripting.Engine.ScriptTimeoutMs <= 0 {
		config.Scripting.Engine.ScriptTimeoutMs = 1000
	}

	return nil
}
