package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurevn/tetadvisor/pkg/embedding/charfreq"
	"github.com/insurevn/tetadvisor/pkg/errors"
	"github.com/insurevn/tetadvisor/pkg/generation"
	genmock "github.com/insurevn/tetadvisor/pkg/generation/adapters/mock"
	"github.com/insurevn/tetadvisor/pkg/knowledge"
	"github.com/insurevn/tetadvisor/pkg/memory"
	"github.com/insurevn/tetadvisor/pkg/phase"
	"github.com/insurevn/tetadvisor/pkg/profile"
)

func newTestAgent(t *testing.T, profileKey string, ph phase.Phase, cfg Config) *Agent {
	t.Helper()

	store := knowledge.NewVectorStore(charfreq.New())
	mem := memory.New(memory.DefaultCapacity)

	a, err := New(context.Background(), profile.Samples()[profileKey], ph, store, mem, cfg)
	require.NoError(t, err)
	return a
}

func TestNew(t *testing.T) {
	t.Run("invalid profile is rejected", func(t *testing.T) {
		store := knowledge.NewVectorStore(charfreq.New())
		_, err := New(context.Background(), profile.CustomerProfile{}, phase.PreTet, store, memory.New(0), DefaultConfig())
		assert.ErrorIs(t, err, errors.ErrInvalidProfile)
	})

	t.Run("invalid phase is rejected", func(t *testing.T) {
		store := knowledge.NewVectorStore(charfreq.New())
		_, err := New(context.Background(), profile.Samples()["family"], phase.Phase("lunar-eclipse"), store, memory.New(0), DefaultConfig())
		assert.ErrorIs(t, err, errors.ErrUnknownPhase)
	})
}

func TestSeeding(t *testing.T) {
	t.Run("family profile seeds history, products and insights", func(t *testing.T) {
		a := newTestAgent(t, "family", phase.Peak, DefaultConfig())

		// motor + health history, last-Tet interaction, travel behavior,
		// demographics, communication = 6; 6 products; 5 insights
		assert.Equal(t, 17, a.Knowledge().Len())
	})

	t.Run("senior profile adds life history", func(t *testing.T) {
		a := newTestAgent(t, "senior", phase.Peak, DefaultConfig())
		assert.Equal(t, 18, a.Knowledge().Len())
	})

	t.Run("re-seeding the same store is idempotent", func(t *testing.T) {
		store := knowledge.NewVectorStore(charfreq.New())
		ctx := context.Background()
		p := profile.Samples()["family"]

		_, err := New(ctx, p, phase.Peak, store, memory.New(0), DefaultConfig())
		require.NoError(t, err)
		seeded := store.Len()

		_, err = New(ctx, p, phase.Peak, store, memory.New(0), DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, seeded, store.Len())
	})
}

func TestRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("pricing question during peak quotes the discounted family package", func(t *testing.T) {
		a := newTestAgent(t, "family", phase.Peak, DefaultConfig())

		reply, err := a.Respond(ctx, "Giá bảo hiểm gia đình bao nhiêu?")
		require.NoError(t, err)
		assert.Contains(t, reply, "Family Health Package")
		assert.Contains(t, reply, "2,450,000")
	})

	t.Run("turn is recorded in memory", func(t *testing.T) {
		a := newTestAgent(t, "family", phase.Peak, DefaultConfig())

		_, err := a.Respond(ctx, "Giá bảo hiểm gia đình bao nhiêu?")
		require.NoError(t, err)

		intents := a.Memory().ByType(memory.TypeUserIntent)
		require.Len(t, intents, 1)
		assert.Equal(t, "Asking about pricing", intents[0].Content)

		conversations := a.Memory().ByType(memory.TypeConversation)
		require.Len(t, conversations, 1)
		assert.True(t, strings.HasPrefix(conversations[0].Content, "User: Giá bảo hiểm gia đình bao nhiêu?"))
	})

	t.Run("claim request gets the fast-track script", func(t *testing.T) {
		a := newTestAgent(t, "young_professional", phase.PreTet, DefaultConfig())

		reply, err := a.Respond(ctx, "Tôi bị tai nạn rồi")
		require.NoError(t, err)
		assert.Contains(t, reply, "Hỗ trợ bồi thường ngay lập tức")

		intents := a.Memory().ByType(memory.TypeUserIntent)
		require.Len(t, intents, 1)
		assert.Equal(t, "Needs claim support", intents[0].Content)
		assert.Equal(t, true, intents[0].Metadata["urgent"])
	})

	t.Run("price objection closes politely and records a concern", func(t *testing.T) {
		a := newTestAgent(t, "family", phase.Peak, DefaultConfig())

		reply, err := a.Respond(ctx, "Đắt quá, để tôi nghĩ thêm")
		require.NoError(t, err)
		assert.Contains(t, reply, "Không sao!")

		concerns := a.Memory().ByType(memory.TypeConcern)
		require.Len(t, concerns, 1)
		assert.Equal(t, "Customer has concerns or objections", concerns[0].Content)
	})

	t.Run("greeting matches phase", func(t *testing.T) {
		a := newTestAgent(t, "family", phase.Peak, DefaultConfig())
		assert.Contains(t, a.Greeting(), "Chúc mừng năm mới! 🧧")
	})
}

func TestRespondGenerative(t *testing.T) {
	ctx := context.Background()

	t.Run("reply comes from the engine with assembled context", func(t *testing.T) {
		engine := genmock.NewMockEngine()
		engine.AddResponse("USER MESSAGE: Tôi muốn đi du lịch", "Chị nên xem gói bảo hiểm du lịch nội địa!")

		cfg := DefaultConfig()
		cfg.Engine = engine
		a := newTestAgent(t, "family", phase.Peak, cfg)

		reply, err := a.RespondGenerative(ctx, "Tôi muốn đi du lịch")
		require.NoError(t, err)
		assert.Equal(t, "Chị nên xem gói bảo hiểm du lịch nội địa!", reply)

		history := engine.GetCallHistory()
		require.Len(t, history, 1)
		prompt, ok := history[0].Args[1].(string)
		require.True(t, ok)
		assert.Contains(t, prompt, "CUSTOMER PROFILE: Linh Tran, 35 years old, Family with Kids")
		assert.Contains(t, prompt, "TET PHASE:")
	})

	t.Run("recent conversation feeds later prompts", func(t *testing.T) {
		engine := genmock.NewMockEngine()

		cfg := DefaultConfig()
		cfg.Engine = engine
		a := newTestAgent(t, "family", phase.Peak, cfg)

		_, err := a.RespondGenerative(ctx, "Giá bao nhiêu?")
		require.NoError(t, err)
		_, err = a.RespondGenerative(ctx, "Còn gói nào khác không?")
		require.NoError(t, err)

		history := engine.GetCallHistory()
		require.Len(t, history, 2)
		second, ok := history[1].Args[1].(string)
		require.True(t, ok)
		assert.Contains(t, second, "RECENT CONVERSATION:")
		assert.Contains(t, second, "Asking about pricing")
	})

	t.Run("configured options reach the engine", func(t *testing.T) {
		engine := genmock.NewMockEngine()

		cfg := DefaultConfig()
		cfg.Engine = engine
		cfg.GenerateOptions = []generation.Option{
			generation.WithTemperature(0.3),
			generation.WithMaxTokens(256),
		}
		a := newTestAgent(t, "family", phase.Peak, cfg)

		_, err := a.RespondGenerative(ctx, "Giá bao nhiêu?")
		require.NoError(t, err)

		history := engine.GetCallHistory()
		require.Len(t, history, 1)
		opts, ok := history[0].Args[2].([]generation.Option)
		require.True(t, ok)

		applied := generation.DefaultOptions()
		for _, opt := range opts {
			opt(&applied)
		}
		assert.Equal(t, 0.3, applied.Temperature)
		assert.Equal(t, 256, applied.MaxTokens)
	})

	t.Run("engine failure yields apology and still records the turn", func(t *testing.T) {
		engine := genmock.NewMockEngine(genmock.WithShouldError(true))

		cfg := DefaultConfig()
		cfg.Engine = engine
		a := newTestAgent(t, "family", phase.Peak, cfg)

		reply, err := a.RespondGenerative(ctx, "Giá bao nhiêu?")
		assert.ErrorIs(t, err, errors.ErrGenerationFailed)
		assert.Equal(t, "Xin lỗi, tôi gặp chút vấn đề kỹ thuật. Bạn có thể thử lại không?", reply)

		assert.NotZero(t, a.Memory().Len())
	})

	t.Run("nil engine falls back to rule mode", func(t *testing.T) {
		a := newTestAgent(t, "family", phase.Peak, DefaultConfig())

		reply, err := a.RespondGenerative(ctx, "Giá bảo hiểm gia đình bao nhiêu?")
		require.NoError(t, err)
		assert.Contains(t, reply, "Family Health Package")
	})
}

func TestProactiveMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("generated outreach", func(t *testing.T) {
		engine := genmock.NewMockEngine(genmock.WithDefaultResponse("Chúc mừng năm mới chị Linh! Gia đình mình đã có bảo hiểm sức khỏe chưa?"))

		cfg := DefaultConfig()
		cfg.Engine = engine
		a := newTestAgent(t, "family", phase.PreTet, cfg)

		message := a.ProactiveMessage(ctx)
		assert.Contains(t, message, "Chúc mừng năm mới chị Linh!")
	})

	t.Run("fallback on engine failure", func(t *testing.T) {
		engine := genmock.NewMockEngine(genmock.WithShouldError(true))

		cfg := DefaultConfig()
		cfg.Engine = engine
		a := newTestAgent(t, "family", phase.PreTet, cfg)

		assert.Equal(t, "Chúc mừng năm mới! 🧧", a.ProactiveMessage(ctx))
	})

	t.Run("rule-only agent uses fallback", func(t *testing.T) {
		a := newTestAgent(t, "family", phase.PreTet, DefaultConfig())
		assert.Equal(t, "Chúc mừng năm mới! 🧧", a.ProactiveMessage(ctx))
	})
}
