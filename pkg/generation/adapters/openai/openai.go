package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/insurevn/tetadvisor/pkg/generation"
	"github.com/insurevn/tetadvisor/pkg/log"
)

var (
	// ErrEmptyAPIKey is returned when the API key is missing.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")
	// ErrNoChoices is returned when the API responds without any completion.
	ErrNoChoices = errors.New("no response choices returned")
)

// Config holds the configuration for the OpenAI adapter.
type Config struct {
	// APIKey is the OpenAI API key.
	APIKey string
	// ChatModel is the completion model, e.g. "gpt-4o-mini".
	ChatModel string
	// EmbeddingModel is the embeddings model, e.g. "text-embedding-3-small".
	EmbeddingModel string
	// BaseURL overrides the API endpoint (for testing).
	BaseURL string
}

// OpenAIAdapter implements generation.Engine on the OpenAI API.
type OpenAIAdapter struct {
	client         *openai.Client
	chatModel      string
	embeddingModel string
}

var _ generation.Engine = (*OpenAIAdapter)(nil)

// NewOpenAIAdapter creates an OpenAI-backed generation engine.
func NewOpenAIAdapter(config Config) (*OpenAIAdapter, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	if config.ChatModel == "" {
		config.ChatModel = openai.GPT4oMini
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = string(openai.SmallEmbedding3)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIAdapter{
		client:         openai.NewClientWithConfig(clientConfig),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
	}, nil
}

// Generate implements generation.Engine. The prompt arrives pre-assembled
// (system instructions, context and user message in one string), so it is
// sent as a single user message.
func (a *OpenAIAdapter) Generate(ctx context.Context, prompt string, opts ...generation.Option) (string, error) {
	options := generation.DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	model := a.chatModel
	if options.Model != "" {
		model = options.Model
	}

	log.DebugContext(ctx, "generating chat completion", "model", model, "prompt_length", len(prompt))

	response, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		log.ErrorContext(ctx, "chat completion failed", "error", err)
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", ErrNoChoices
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// GenerateEmbeddings implements generation.Engine.
func (a *OpenAIAdapter) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	response, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(a.embeddingModel),
	})
	if err != nil {
		log.ErrorContext(ctx, "embedding request failed", "error", err)
		return nil, err
	}

	embeddings := make([][]float32, len(response.Data))
	for i, data := range response.Data {
		embeddings[i] = data.Embedding
	}
	return embeddings, nil
}
