package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterh/liner"

	"github.com/insurevn/tetadvisor/pkg/agent"
	"github.com/insurevn/tetadvisor/pkg/catalog"
	"github.com/insurevn/tetadvisor/pkg/config"
	"github.com/insurevn/tetadvisor/pkg/log"
	"github.com/insurevn/tetadvisor/pkg/profile"
	"github.com/insurevn/tetadvisor/pkg/session"
	"github.com/insurevn/tetadvisor/pkg/sessionstore"
)

// REPL commands
const (
	cmdHelp      = "!help"
	cmdQuit      = "!quit"
	cmdProfile   = "!profile"
	cmdPhase     = "!phase"
	cmdRecommend = "!recommend"
	cmdProactive = "!proactive"
	cmdKB        = "!kb"
	cmdMemory    = "!memory"
	cmdReset     = "!reset"
	cmdConfig    = "!config"
)

const helpText = `
Tet Advisor - Command Reference:
-----------------------------------------
!help               - Show this help message
!profile [key]      - Show the active profile, or switch to a built-in one
!phase <phase>      - Switch season phase (pre-tet, tet-peak, post-tet)
!recommend          - Show needs-based recommendations
!proactive          - Generate a proactive outreach message
!kb <query>         - Search the knowledge base directly
!memory             - Show short-term memory and its summary
!reset              - Clear short-term memory
!config             - Show active configuration
!quit               - Exit

Anything else is sent to the advisor as a chat message.`

const historyFile = ".tetadvisor_history"

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	sessionID := flag.String("session", "", "Session identifier for memory persistence (random when empty)")
	flag.Parse()

	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log.Setup(cfg.Logging)
	log.Info("starting tet advisor", "phase", cfg.Phase, "profile", cfg.Profile)

	sid := session.ID(*sessionID)
	if sid == "" {
		sid = session.NewID()
	}

	ctx := session.ContextWithSessionID(context.Background(), sid)
	cli := &cli{cfg: cfg, sessionID: sid}
	if err := cli.rebuild(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize advisor: %v\n", err)
		os.Exit(1)
	}
	defer cli.close()

	cli.run(ctx)
}

type cli struct {
	cfg       *config.Config
	sessionID session.ID
	agent     *agent.Agent
	sessions  sessionstore.Store
}

// rebuild constructs the agent from the current config, closing any previous
// session store first.
func (c *cli) rebuild(ctx context.Context) error {
	c.close()

	a, sessions, err := agent.NewFromConfig(ctx, c.cfg, c.sessionID)
	if err != nil {
		return err
	}
	c.agent = a
	c.sessions = sessions
	return nil
}

func (c *cli) close() {
	if c.sessions != nil {
		c.sessions.Close()
		c.sessions = nil
	}
}

// saveSession flushes memory to the session store, when one is configured.
func (c *cli) saveSession(ctx context.Context) {
	if c.sessions == nil {
		return
	}
	if err := c.sessions.SaveSnapshot(ctx, c.sessionID, c.agent.Memory().Snapshot()); err != nil {
		log.Warn("failed to save session", "error", err)
	}
}

func (c *cli) run(ctx context.Context) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) (completions []string) {
		commands := []string{cmdHelp, cmdQuit, cmdProfile, cmdPhase, cmdRecommend, cmdProactive, cmdKB, cmdMemory, cmdReset, cmdConfig}
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, prefix) {
				completions = append(completions, cmd)
			}
		}
		return
	})

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("\n=== Tet Insurance Advisor ===")
	fmt.Printf("Customer: %s | Phase: %s\n", c.agent.Profile().Name, c.agent.Phase())
	fmt.Println("Type !help for available commands.")
	fmt.Println()
	fmt.Println(c.agent.Greeting())

	for {
		input, err := line.Prompt(fmt.Sprintf("tet::%s> ", c.agent.Profile().Name))
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nTạm biệt! 👋")
				break
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == cmdQuit {
			c.saveSession(ctx)
			fmt.Println("Tạm biệt! 👋")
			break
		}

		c.dispatch(ctx, input)
	}
}

func (c *cli) dispatch(ctx context.Context, input string) {
	if !strings.HasPrefix(input, "!") {
		c.chat(ctx, input)
		return
	}

	parts := strings.SplitN(input, " ", 2)
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}

	switch parts[0] {
	case cmdHelp:
		fmt.Println(helpText)

	case cmdProfile:
		c.handleProfile(ctx, arg)

	case cmdPhase:
		c.handlePhase(ctx, arg)

	case cmdRecommend:
		c.handleRecommend()

	case cmdProactive:
		fmt.Println(c.agent.ProactiveMessage(ctx))

	case cmdKB:
		c.handleKB(ctx, arg)

	case cmdMemory:
		c.handleMemory()

	case cmdReset:
		c.agent.Memory().Clear()
		c.saveSession(ctx)
		fmt.Println("Short-term memory cleared.")

	case cmdConfig:
		fmt.Printf("Phase: %s\nProfile: %s\nKnowledge backend: %s (top_k=%d, floor=%.2f)\nGeneration provider: %s\nSession store: %s\n",
			c.cfg.Phase, c.cfg.Profile, c.cfg.Knowledge.Backend, c.cfg.Knowledge.TopK, c.cfg.Knowledge.RelevanceFloor,
			providerName(c.cfg.Generation.Provider), c.cfg.Session.Store)

	default:
		fmt.Printf("Unknown command: %s (try !help)\n", parts[0])
	}
}

func (c *cli) chat(ctx context.Context, input string) {
	reply, err := c.agent.RespondGenerative(ctx, input)
	if err != nil {
		log.Warn("reply degraded", "error", err)
	}
	fmt.Println(reply)
	c.saveSession(ctx)
}

func (c *cli) handleProfile(ctx context.Context, arg string) {
	if arg == "" {
		p := c.agent.Profile()
		fmt.Printf("%s\nTone: %s | Plans: %s\nCoverage: motor=%t health=%t life=%t travel=%t\n",
			p.Summary(), p.Tone, p.PlansOrDefault(), p.HasMotor, p.HasHealth, p.HasLife, p.HasTravel)

		keys := make([]string, 0)
		for key := range profile.Samples() {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fmt.Printf("Available profiles: %s\n", strings.Join(keys, ", "))
		return
	}

	if _, ok := profile.Samples()[arg]; !ok {
		fmt.Printf("Unknown profile: %s\n", arg)
		return
	}

	c.cfg.Profile = arg
	c.cfg.ProfilePath = ""
	if err := c.rebuild(ctx); err != nil {
		fmt.Printf("Failed to switch profile: %v\n", err)
		return
	}
	fmt.Println(c.agent.Greeting())
}

func (c *cli) handlePhase(ctx context.Context, arg string) {
	if arg == "" {
		fmt.Printf("Current phase: %s\n", c.agent.Phase())
		return
	}

	previous := c.cfg.Phase
	c.cfg.Phase = arg
	if err := c.rebuild(ctx); err != nil {
		c.cfg.Phase = previous
		fmt.Printf("Failed to switch phase: %v\n", err)
		return
	}
	fmt.Println(c.agent.Greeting())
}

func (c *cli) handleRecommend() {
	recs := c.agent.Recommendations()
	if len(recs) == 0 {
		fmt.Println("No gaps found in current coverage.")
		return
	}

	for i, rec := range recs {
		fmt.Printf("%d. %s\n", i+1, rec.Reason)
		for _, id := range rec.Products {
			product := catalog.MustGet(id)
			fmt.Printf("   - %s (%s VND)\n", product.Name, catalog.FormatVND(c.agent.Phase().EffectivePrice(product.BasePrice)))
		}
	}
}

func (c *cli) handleKB(ctx context.Context, query string) {
	if query == "" {
		fmt.Println("Usage: !kb <query>")
		return
	}

	results, err := c.agent.Knowledge().Search(ctx, query, c.cfg.Knowledge.TopK)
	if err != nil {
		fmt.Printf("Search failed: %v\n", err)
		return
	}
	if len(results) == 0 {
		fmt.Println("No matches.")
		return
	}

	for _, result := range results {
		fmt.Printf("[%.3f] %s\n", result.SimilarityScore, result.Content)
	}
}

func (c *cli) handleMemory() {
	items := c.agent.Memory().Snapshot()
	if len(items) == 0 {
		fmt.Println("Short-term memory is empty.")
		return
	}

	for _, item := range items {
		fmt.Printf("- [%s] %s\n", item.Type, item.Content)
	}
	fmt.Printf("Summary: %s\n", c.agent.Memory().Summarize())
}

func providerName(provider string) string {
	if provider == "" {
		return "none (rule-only)"
	}
	return provider
}
