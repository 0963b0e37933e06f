package agent

import (
	"context"

	"github.com/insurevn/tetadvisor/pkg/advisor"
	"github.com/insurevn/tetadvisor/pkg/errors"
	"github.com/insurevn/tetadvisor/pkg/generation"
	"github.com/insurevn/tetadvisor/pkg/intent"
	"github.com/insurevn/tetadvisor/pkg/knowledge"
	"github.com/insurevn/tetadvisor/pkg/log"
	"github.com/insurevn/tetadvisor/pkg/memory"
	"github.com/insurevn/tetadvisor/pkg/phase"
	"github.com/insurevn/tetadvisor/pkg/profile"
	"github.com/insurevn/tetadvisor/pkg/scripting"
)

// apologyReply is sent when generative mode fails mid-conversation.
const apologyReply = "Xin lỗi, tôi gặp chút vấn đề kỹ thuật. Bạn có thể thử lại không?"

// proactiveFallback is sent when a proactive outreach cannot be generated.
const proactiveFallback = "Chúc mừng năm mới! 🧧"

// replyPreviewLen bounds the reply text stored in conversation memory items.
const replyPreviewLen = 100

// Config carries the agent's tunables and optional collaborators.
type Config struct {
	// Engine enables generative replies; nil keeps the agent rule-only
	Engine generation.Engine

	// Scripting enables Lua intent hooks; nil disables them
	Scripting scripting.Engine

	// GenerateOptions are applied to every Generate call on the engine
	GenerateOptions []generation.Option

	// RelevanceFloor filters weak knowledge matches out of context
	RelevanceFloor float64

	// RecentWindow is how many memory items feed the context
	RecentWindow int
}

// DefaultConfig returns the default agent configuration (rule-only).
func DefaultConfig() Config {
	return Config{
		RelevanceFloor: knowledge.DefaultRelevanceFloor,
		RecentWindow:   memory.DefaultRecentWindow,
	}
}

// Agent is the advisory core for one customer conversation. It owns the
// seeded knowledge store and the session's short-term memory, classifies
// each user turn and produces either a deterministic rule-mode reply or a
// generated one.
type Agent struct {
	profile    profile.CustomerProfile
	phase      phase.Phase
	knowledge  knowledge.Store
	memory     *memory.ShortTermMemory
	renderer   *advisor.Renderer
	classifier *intent.Classifier
	config     Config
}

// New creates an agent for the given customer and season phase. The profile
// is validated and the knowledge store is seeded with the customer's history
// and the product catalog; seeding the same store twice is a no-op because
// document IDs are stable.
func New(ctx context.Context, p profile.CustomerProfile, ph phase.Phase, store knowledge.Store, mem *memory.ShortTermMemory, cfg Config) (*Agent, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !ph.Valid() {
		return nil, errors.Wrap(errors.ErrUnknownPhase, "phase %q", ph)
	}

	if cfg.RelevanceFloor <= 0 {
		cfg.RelevanceFloor = knowledge.DefaultRelevanceFloor
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = memory.DefaultRecentWindow
	}

	a := &Agent{
		profile:    p,
		phase:      ph,
		knowledge:  store,
		memory:     mem,
		renderer:   advisor.NewRenderer(ph),
		classifier: intent.NewClassifier(),
		config:     cfg,
	}

	if err := a.seedKnowledge(ctx); err != nil {
		return nil, errors.Wrap(err, "seeding knowledge for %s", p.Name)
	}

	log.DebugContext(ctx, "agent initialized",
		"customer", p.Name,
		"phase", ph,
		"documents", store.Len(),
		"generative", cfg.Engine != nil,
	)
	return a, nil
}

// Profile returns the customer profile.
func (a *Agent) Profile() profile.CustomerProfile {
	return a.profile
}

// Phase returns the season phase.
func (a *Agent) Phase() phase.Phase {
	return a.phase
}

// Memory returns the session's short-term memory.
func (a *Agent) Memory() *memory.ShortTermMemory {
	return a.memory
}

// Knowledge returns the seeded knowledge store.
func (a *Agent) Knowledge() knowledge.Store {
	return a.knowledge
}

// Greeting returns the personalized seasonal greeting.
func (a *Agent) Greeting() string {
	return a.renderer.Greeting(a.profile)
}

// Recommendations runs the needs rules against the customer profile.
func (a *Agent) Recommendations() []advisor.Recommendation {
	return advisor.AnalyzeNeeds(a.profile)
}

// Respond produces a deterministic rule-mode reply and records the turn in
// short-term memory.
func (a *Agent) Respond(ctx context.Context, userMessage string) (string, error) {
	tags := a.classifier.ClassifyWithHooks(ctx, a.config.Scripting, userMessage)
	reply := a.renderer.Reply(a.profile, userMessage)

	a.updateMemory(ctx, userMessage, reply, tags)

	log.DebugContext(ctx, "rule-mode reply",
		"tags", len(tags),
		"reply_length", len(reply),
	)
	return reply, nil
}

// RespondGenerative assembles the conversation context and asks the
// generation engine for a reply. When generation fails the customer gets a
// polite apology instead of an error, and the turn is still recorded so the
// conversation can continue. It returns errors.ErrGenerationFailed wrapped
// around the cause alongside the apology text.
func (a *Agent) RespondGenerative(ctx context.Context, userMessage string) (string, error) {
	if a.config.Engine == nil {
		return a.Respond(ctx, userMessage)
	}

	tags := a.classifier.ClassifyWithHooks(ctx, a.config.Scripting, userMessage)

	assembled, err := a.buildContext(ctx, userMessage)
	if err != nil {
		log.WarnContext(ctx, "context assembly failed, continuing without retrieval", "error", err)
	}

	prompt := fullPrompt(a.systemPrompt(), assembled, userMessage)

	reply, err := a.config.Engine.Generate(ctx, prompt, a.config.GenerateOptions...)
	if err != nil {
		log.ErrorContext(ctx, "generation failed", "error", err)
		a.updateMemory(ctx, userMessage, apologyReply, tags)
		return apologyReply, errors.Wrap(errors.ErrGenerationFailed, "generating reply: %v", err)
	}

	a.updateMemory(ctx, userMessage, reply, tags)
	return reply, nil
}

// ProactiveMessage generates an outreach message for the customer without a
// user turn. Rule-only agents and failed generations fall back to a plain
// new year greeting.
func (a *Agent) ProactiveMessage(ctx context.Context) string {
	if a.config.Engine == nil {
		return proactiveFallback
	}

	assembled, err := a.buildContext(ctx, "generate proactive Tet greeting and recommendation")
	if err != nil {
		log.WarnContext(ctx, "context assembly failed for proactive message", "error", err)
	}

	message, err := a.config.Engine.Generate(ctx, proactivePrompt(a.systemPrompt(), assembled), a.config.GenerateOptions...)
	if err != nil {
		log.ErrorContext(ctx, "proactive generation failed", "error", err)
		return proactiveFallback
	}
	return message
}

// updateMemory records the turn: one typed item per detected intent family,
// plus a truncated conversation item.
func (a *Agent) updateMemory(ctx context.Context, userMessage, reply string, tags []intent.Tag) {
	record := func(itemType memory.Type, content string, metadata map[string]interface{}) {
		if err := a.memory.Add(itemType, content, metadata); err != nil {
			log.WarnContext(ctx, "memory write failed", "type", itemType, "error", err)
		}
	}

	for _, tag := range tags {
		switch tag {
		case intent.TagPricing:
			record(memory.TypeUserIntent, "Asking about pricing", map[string]interface{}{"query": userMessage})
		case intent.TagTravel:
			record(memory.TypeUserIntent, "Interested in travel insurance", map[string]interface{}{"query": userMessage})
		case intent.TagClaim:
			record(memory.TypeUserIntent, "Needs claim support", map[string]interface{}{"query": userMessage, "urgent": true})
		case intent.TagAffirmative:
			record(memory.TypeDecision, "Customer showing interest/agreement", map[string]interface{}{"response": userMessage})
		case intent.TagNegative:
			record(memory.TypeConcern, "Customer has concerns or objections", map[string]interface{}{"response": userMessage})
		}
	}

	record(memory.TypeConversation, conversationLine(userMessage, reply), nil)
}

// conversationLine formats the turn for the conversation memory item. The
// reply is truncated to keep items small; the user message is kept whole.
func conversationLine(userMessage, reply string) string {
	preview := []rune(reply)
	if len(preview) > replyPreviewLen {
		preview = preview[:replyPreviewLen]
	}
	return "User: " + userMessage + " | Agent: " + string(preview) + "..."
}
