package agent

import (
	"context"
	"fmt"
	"strings"
)

// contextTopK is how many knowledge hits are considered per turn before the
// relevance floor is applied.
const contextTopK = 5

// buildContext assembles the per-turn prompt context: customer profile
// summary, phase description, relevant knowledge and the recent conversation
// window. Knowledge hits below the relevance floor are dropped rather than
// padding the prompt with noise.
func (a *Agent) buildContext(ctx context.Context, userMessage string) (string, error) {
	var parts []string

	parts = append(parts, "CUSTOMER PROFILE: "+a.profile.Summary())
	parts = append(parts, "TET PHASE: "+a.phase.Context())

	results, err := a.knowledge.Search(ctx, userMessage, contextTopK)
	if err != nil {
		return strings.Join(parts, "\n"), err
	}

	var relevant []string
	for _, result := range results {
		if result.SimilarityScore > a.config.RelevanceFloor {
			relevant = append(relevant, "- "+result.Content)
		}
	}
	if len(relevant) > 0 {
		parts = append(parts, "RELEVANT CUSTOMER HISTORY & KNOWLEDGE:")
		parts = append(parts, relevant...)
	}

	recent := a.memory.Recent(a.config.RecentWindow)
	if len(recent) > 0 {
		parts = append(parts, "RECENT CONVERSATION:")
		for _, item := range recent {
			parts = append(parts, fmt.Sprintf("- %s: %s", item.Type, item.Content))
		}
	}

	return strings.Join(parts, "\n"), nil
}
