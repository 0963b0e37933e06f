package mock

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/insurevn/tetadvisor/pkg/generation"
	"github.com/insurevn/tetadvisor/pkg/log"
)

// Call is one recorded method call on the mock engine.
type Call struct {
	// Method is the name of the method that was called
	Method string

	// Args contains the arguments passed to the method
	Args []interface{}
}

// MockEngine implements generation.Engine with canned responses. Prompt
// matching is substring-based by default so tests can key on a fragment of
// an assembled prompt without reproducing the whole thing.
type MockEngine struct {
	cannedResponses  map[string]string
	defaultResponse  string
	cannedEmbeddings map[string][]float32
	defaultEmbedding []float32
	exactMatch       bool
	shouldError      bool

	mutex       sync.RWMutex
	callHistory []Call
}

var _ generation.Engine = (*MockEngine)(nil)

// MockOption configures a MockEngine.
type MockOption func(*MockEngine)

// WithDefaultResponse sets the response returned when no canned entry matches.
func WithDefaultResponse(resp string) MockOption {
	return func(m *MockEngine) {
		m.defaultResponse = resp
	}
}

// WithDefaultEmbedding sets the embedding returned when no canned entry matches.
func WithDefaultEmbedding(embedding []float32) MockOption {
	return func(m *MockEngine) {
		m.defaultEmbedding = embedding
	}
}

// WithExactMatch switches prompt matching from substring to exact.
func WithExactMatch(exact bool) MockOption {
	return func(m *MockEngine) {
		m.exactMatch = exact
	}
}

// WithShouldError makes every call return an error.
func WithShouldError(shouldErr bool) MockOption {
	return func(m *MockEngine) {
		m.shouldError = shouldErr
	}
}

// NewMockEngine creates a MockEngine with the given options.
func NewMockEngine(opts ...MockOption) *MockEngine {
	m := &MockEngine{
		cannedResponses:  make(map[string]string),
		defaultResponse:  "Chúc mừng năm mới! Tôi có thể giúp gì cho bạn?",
		cannedEmbeddings: make(map[string][]float32),
		defaultEmbedding: []float32{0.0, 0.0, 0.0},
		callHistory:      make([]Call, 0),
	}

	for _, opt := range opts {
		opt(m)
	}

	log.Debug("created mock generation engine", "exact_match", m.exactMatch)
	return m
}

// Generate implements generation.Engine.
func (m *MockEngine) Generate(ctx context.Context, prompt string, opts ...generation.Option) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callHistory = append(m.callHistory, Call{
		Method: "Generate",
		Args:   []interface{}{ctx, prompt, opts},
	})

	if m.shouldError {
		return "", errors.New("mock generation engine error")
	}

	options := generation.DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	log.Debug("generating with mock engine",
		"prompt_length", len(prompt),
		"temperature", options.Temperature,
		"max_tokens", options.MaxTokens,
		"model", options.Model)

	if m.exactMatch {
		if response, ok := m.cannedResponses[prompt]; ok {
			return response, nil
		}
	} else {
		for key, response := range m.cannedResponses {
			if strings.Contains(prompt, key) {
				return response, nil
			}
		}
	}

	return m.defaultResponse, nil
}

// GenerateEmbeddings implements generation.Engine.
func (m *MockEngine) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callHistory = append(m.callHistory, Call{
		Method: "GenerateEmbeddings",
		Args:   []interface{}{ctx, texts},
	})

	if m.shouldError {
		return nil, errors.New("mock generation engine error")
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		if m.exactMatch {
			if embedding, ok := m.cannedEmbeddings[text]; ok {
				embeddings[i] = embedding
				continue
			}
		} else {
			var matched bool
			for key, embedding := range m.cannedEmbeddings {
				if strings.Contains(text, key) {
					embeddings[i] = embedding
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}
		embeddings[i] = m.defaultEmbedding
	}

	return embeddings, nil
}

// AddResponse adds a canned response keyed by prompt (or prompt fragment).
func (m *MockEngine) AddResponse(prompt, response string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.cannedResponses[prompt] = response
}

// AddEmbedding adds a canned embedding keyed by text (or text fragment).
func (m *MockEngine) AddEmbedding(text string, embedding []float32) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.cannedEmbeddings[text] = embedding
}

// SetShouldError toggles the error mode.
func (m *MockEngine) SetShouldError(shouldErr bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.shouldError = shouldErr
}

// GetCallHistory returns a copy of the recorded calls.
func (m *MockEngine) GetCallHistory() []Call {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	history := make([]Call, len(m.callHistory))
	copy(history, m.callHistory)
	return history
}

// ClearHistory discards the recorded calls.
func (m *MockEngine) ClearHistory() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.callHistory = make([]Call, 0)
}
