package gemini

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/insurevn/tetadvisor/pkg/generation"
	"github.com/insurevn/tetadvisor/pkg/log"
)

var (
	// ErrEmptyAPIKey is returned when the API key is missing.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")
	// ErrEmptyResponse is returned when the model responds without content.
	ErrEmptyResponse = errors.New("empty model response")
)

// Config holds the configuration for the Gemini adapter.
type Config struct {
	// APIKey is the Gemini API key.
	APIKey string
	// Model is the generative model, e.g. "gemini-2.5-flash".
	Model string
	// EmbeddingModel is the embeddings model, e.g. "gemini-embedding-001".
	EmbeddingModel string
}

// GeminiAdapter implements generation.Engine on the Gemini API.
type GeminiAdapter struct {
	client         *genai.Client
	model          string
	embeddingModel string
}

var _ generation.Engine = (*GeminiAdapter)(nil)

// NewGeminiAdapter creates a Gemini-backed generation engine using API-key
// authentication.
func NewGeminiAdapter(ctx context.Context, config Config) (*GeminiAdapter, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	if config.Model == "" {
		config.Model = "gemini-2.5-flash"
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = "gemini-embedding-001"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiAdapter{
		client:         client,
		model:          config.Model,
		embeddingModel: config.EmbeddingModel,
	}, nil
}

// Generate implements generation.Engine.
func (a *GeminiAdapter) Generate(ctx context.Context, prompt string, opts ...generation.Option) (string, error) {
	options := generation.DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	model := a.model
	if options.Model != "" {
		model = options.Model
	}

	log.DebugContext(ctx, "generating content", "model", model, "prompt_length", len(prompt))

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(options.Temperature)),
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	resp, err := a.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		log.ErrorContext(ctx, "content generation failed", "error", err)
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// GenerateEmbeddings implements generation.Engine. Texts are embedded one at
// a time because the API embeds a single content per request.
func (a *GeminiAdapter) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))
	for _, text := range texts {
		resp, err := a.client.Models.EmbedContent(ctx, a.embeddingModel, genai.Text(text), &genai.EmbedContentConfig{})
		if err != nil {
			log.ErrorContext(ctx, "embedding request failed", "error", err)
			return nil, err
		}
		if resp == nil || len(resp.Embeddings) == 0 {
			return nil, ErrEmptyResponse
		}
		embeddings = append(embeddings, resp.Embeddings[0].Values)
	}
	return embeddings, nil
}
