package agent

import (
	"context"
	"fmt"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/insurevn/tetadvisor/pkg/config"
	"github.com/insurevn/tetadvisor/pkg/embedding/charfreq"
	"github.com/insurevn/tetadvisor/pkg/errors"
	"github.com/insurevn/tetadvisor/pkg/generation"
	"github.com/insurevn/tetadvisor/pkg/generation/adapters/gemini"
	genmock "github.com/insurevn/tetadvisor/pkg/generation/adapters/mock"
	genopenai "github.com/insurevn/tetadvisor/pkg/generation/adapters/openai"
	"github.com/insurevn/tetadvisor/pkg/knowledge"
	chromemadapter "github.com/insurevn/tetadvisor/pkg/knowledge/adapters/chromem_go"
	"github.com/insurevn/tetadvisor/pkg/log"
	"github.com/insurevn/tetadvisor/pkg/memory"
	"github.com/insurevn/tetadvisor/pkg/phase"
	"github.com/insurevn/tetadvisor/pkg/profile"
	"github.com/insurevn/tetadvisor/pkg/scripting"
	"github.com/insurevn/tetadvisor/pkg/session"
	"github.com/insurevn/tetadvisor/pkg/sessionstore"
	"github.com/insurevn/tetadvisor/pkg/sessionstore/adapters/boltdb"
	"github.com/insurevn/tetadvisor/pkg/sessionstore/adapters/sqlite"
)

// NewFromConfig wires a complete agent from configuration: profile, phase,
// knowledge backend, short-term memory (restored from the session store when
// one is configured), generation engine and Lua hooks. The returned store is
// nil when session persistence is off; the caller owns closing it.
func NewFromConfig(ctx context.Context, cfg *config.Config, sessionID session.ID) (*Agent, sessionstore.Store, error) {
	p, err := resolveProfile(cfg)
	if err != nil {
		return nil, nil, err
	}

	ph, err := phase.Parse(cfg.Phase)
	if err != nil {
		return nil, nil, err
	}

	store, err := buildKnowledgeStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	sessions, mem, err := buildMemory(ctx, cfg, sessionID)
	if err != nil {
		return nil, nil, err
	}

	agentCfg := Config{
		RelevanceFloor:  cfg.Knowledge.RelevanceFloor,
		RecentWindow:    cfg.Memory.RecentWindow,
		GenerateOptions: generationOptions(cfg),
	}

	agentCfg.Engine, err = buildEngine(ctx, cfg)
	if err != nil {
		closeIfSet(sessions)
		return nil, nil, err
	}

	agentCfg.Scripting, err = buildScripting(cfg)
	if err != nil {
		closeIfSet(sessions)
		return nil, nil, err
	}

	a, err := New(ctx, p, ph, store, mem, agentCfg)
	if err != nil {
		closeIfSet(sessions)
		return nil, nil, err
	}
	return a, sessions, nil
}

func resolveProfile(cfg *config.Config) (profile.CustomerProfile, error) {
	if cfg.ProfilePath != "" {
		return profile.LoadFromFile(cfg.ProfilePath)
	}

	samples := profile.Samples()
	if p, ok := samples[cfg.Profile]; ok {
		return p, nil
	}
	return profile.CustomerProfile{}, errors.Wrap(errors.ErrInvalidProfile, "unknown profile %q", cfg.Profile)
}

func buildKnowledgeStore(cfg *config.Config) (knowledge.Store, error) {
	vectorizer := charfreq.New()

	switch strings.ToLower(cfg.Knowledge.Backend) {
	case "chromem":
		db := chromem.NewDB()
		return chromemadapter.NewChromemGoAdapter(db, "tetadvisor", vectorizer)
	default:
		return knowledge.NewVectorStore(vectorizer), nil
	}
}

func buildMemory(ctx context.Context, cfg *config.Config, sessionID session.ID) (sessionstore.Store, *memory.ShortTermMemory, error) {
	var sessions sessionstore.Store
	var err error

	switch strings.ToLower(cfg.Session.Store) {
	case "boltdb":
		sessions, err = boltdb.NewBoltStore(cfg.Session.Path)
	case "sqlite":
		sessions, err = sqlite.NewSQLiteStore(cfg.Session.Path)
	default:
		return nil, memory.New(cfg.Memory.Capacity), nil
	}
	if err != nil {
		return nil, nil, err
	}

	items, err := sessions.LoadSnapshot(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, errors.ErrSessionNotFound) {
			sessions.Close()
			return nil, nil, err
		}
		return sessions, memory.New(cfg.Memory.Capacity), nil
	}

	log.DebugContext(ctx, "restored session memory", "session_id", sessionID, "items", len(items))
	return sessions, memory.NewFromSnapshot(cfg.Memory.Capacity, items), nil
}

func buildEngine(ctx context.Context, cfg *config.Config) (generation.Engine, error) {
	switch strings.ToLower(cfg.Generation.Provider) {
	case "":
		return nil, nil
	case "mock":
		return genmock.NewMockEngine(), nil
	case "openai":
		return genopenai.NewOpenAIAdapter(genopenai.Config{
			APIKey:         cfg.Generation.OpenAI.APIKey,
			ChatModel:      cfg.Generation.OpenAI.Model,
			EmbeddingModel: cfg.Generation.OpenAI.EmbeddingModel,
		})
	case "gemini":
		return gemini.NewGeminiAdapter(ctx, gemini.Config{
			APIKey:         cfg.Generation.Gemini.APIKey,
			Model:          cfg.Generation.Gemini.Model,
			EmbeddingModel: cfg.Generation.Gemini.EmbeddingModel,
		})
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Generation.Provider)
	}
}

// generationOptions maps provider tunables from the config onto the per-call
// options every Generate request carries.
func generationOptions(cfg *config.Config) []generation.Option {
	if strings.ToLower(cfg.Generation.Provider) != "openai" {
		return nil
	}
	return []generation.Option{
		generation.WithTemperature(cfg.Generation.OpenAI.Temperature),
		generation.WithMaxTokens(cfg.Generation.OpenAI.MaxTokens),
	}
}

func buildScripting(cfg *config.Config) (scripting.Engine, error) {
	if !cfg.Scripting.Enabled {
		return nil, nil
	}

	engine, err := scripting.NewLuaEngine(cfg.Scripting.Engine)
	if err != nil {
		return nil, err
	}

	for _, dir := range cfg.Scripting.Paths {
		if err := engine.LoadScriptDir(dir); err != nil {
			engine.Close()
			return nil, err
		}
	}
	return engine, nil
}

func closeIfSet(sessions sessionstore.Store) {
	if sessions != nil {
		sessions.Close()
	}
}
