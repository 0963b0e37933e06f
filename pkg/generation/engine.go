package generation

import (
	"context"
)

// Option configures a single generation request.
type Option func(*Options)

// Options holds per-request generation settings.
type Options struct {
	// Temperature controls randomness (0.0-1.0)
	Temperature float64

	// MaxTokens limits the length of the generated reply
	MaxTokens int

	// Model overrides the adapter's default model
	Model string
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.7,
		MaxTokens:   1024,
		Model:       "",
	}
}

// WithTemperature sets the temperature option.
func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

// WithMaxTokens sets the max tokens option.
func WithMaxTokens(tokens int) Option {
	return func(o *Options) {
		o.MaxTokens = tokens
	}
}

// WithModel sets the model option.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Engine is the interface to a text generation backend (LLM).
type Engine interface {
	// Generate sends a fully assembled prompt to the backend and returns
	// the generated reply.
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)

	// GenerateEmbeddings creates vector embeddings for the provided texts.
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}
