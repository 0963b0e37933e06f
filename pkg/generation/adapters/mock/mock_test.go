package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurevn/tetadvisor/pkg/generation"
)

func TestMockEngine_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("substring match", func(t *testing.T) {
		engine := NewMockEngine()
		engine.AddResponse("du lịch", "Bạn nên mua bảo hiểm du lịch!")

		result, err := engine.Generate(ctx, "USER MESSAGE: Tôi muốn du lịch Đà Nẵng")
		require.NoError(t, err)
		assert.Equal(t, "Bạn nên mua bảo hiểm du lịch!", result)
	})

	t.Run("default response when nothing matches", func(t *testing.T) {
		engine := NewMockEngine(WithDefaultResponse("fallback"))

		result, err := engine.Generate(ctx, "unrelated")
		require.NoError(t, err)
		assert.Equal(t, "fallback", result)
	})

	t.Run("exact match mode", func(t *testing.T) {
		engine := NewMockEngine(WithExactMatch(true), WithDefaultResponse("default"))
		engine.AddResponse("exact prompt", "exact reply")

		result, err := engine.Generate(ctx, "exact prompt")
		require.NoError(t, err)
		assert.Equal(t, "exact reply", result)

		result, err = engine.Generate(ctx, "prefix exact prompt suffix")
		require.NoError(t, err)
		assert.Equal(t, "default", result)
	})

	t.Run("error mode", func(t *testing.T) {
		engine := NewMockEngine(WithShouldError(true))

		_, err := engine.Generate(ctx, "anything")
		assert.Error(t, err)
	})

	t.Run("options are applied without error", func(t *testing.T) {
		engine := NewMockEngine()
		_, err := engine.Generate(ctx, "x",
			generation.WithTemperature(0.2),
			generation.WithMaxTokens(64),
			generation.WithModel("test-model"))
		assert.NoError(t, err)
	})
}

func TestMockEngine_GenerateEmbeddings(t *testing.T) {
	ctx := context.Background()

	t.Run("canned and default embeddings", func(t *testing.T) {
		engine := NewMockEngine(WithDefaultEmbedding([]float32{0.1, 0.1}))
		engine.AddEmbedding("travel", []float32{0.9, 0.1})

		embeddings, err := engine.GenerateEmbeddings(ctx, []string{"travel insurance", "something else"})
		require.NoError(t, err)
		require.Len(t, embeddings, 2)
		assert.Equal(t, []float32{0.9, 0.1}, embeddings[0])
		assert.Equal(t, []float32{0.1, 0.1}, embeddings[1])
	})

	t.Run("error mode", func(t *testing.T) {
		engine := NewMockEngine(WithShouldError(true))
		_, err := engine.GenerateEmbeddings(ctx, []string{"x"})
		assert.Error(t, err)
	})
}

func TestMockEngine_CallHistory(t *testing.T) {
	ctx := context.Background()
	engine := NewMockEngine()

	_, err := engine.Generate(ctx, "first")
	require.NoError(t, err)
	_, err = engine.GenerateEmbeddings(ctx, []string{"second"})
	require.NoError(t, err)

	history := engine.GetCallHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "Generate", history[0].Method)
	assert.Equal(t, "GenerateEmbeddings", history[1].Method)

	engine.ClearHistory()
	assert.Empty(t, engine.GetCallHistory())
}
