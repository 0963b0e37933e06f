package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/insurevn/tetadvisor/pkg/catalog"
)

// seedKnowledge loads the customer's history, the product catalog and the
// seasonal insights into the knowledge store. Document IDs are stable, so
// re-seeding an already seeded store overwrites in place instead of
// duplicating.
func (a *Agent) seedKnowledge(ctx context.Context) error {
	if err := a.seedCustomerHistory(ctx); err != nil {
		return err
	}
	if err := a.seedProducts(ctx); err != nil {
		return err
	}
	return a.seedSeasonalInsights(ctx)
}

func (a *Agent) seedCustomerHistory(ctx context.Context) error {
	p := a.profile

	if p.HasMotor {
		err := a.knowledge.AddDocument(ctx, "history_motor",
			fmt.Sprintf("Customer %s has motor insurance. Purchased 6 months ago. No claims filed. Regular premium payer.", p.Name),
			map[string]interface{}{"category": "purchase_history", "product": "motor"})
		if err != nil {
			return err
		}
	}

	if p.HasHealth {
		familySize := p.FamilySize
		if familySize < 1 {
			familySize = 1
		}
		err := a.knowledge.AddDocument(ctx, "history_health",
			fmt.Sprintf("Customer has health insurance for family of %d. Active policy. Used for annual checkups.", familySize),
			map[string]interface{}{"category": "purchase_history", "product": "health"})
		if err != nil {
			return err
		}
	}

	if p.HasLife {
		err := a.knowledge.AddDocument(ctx, "history_life",
			"Customer has life insurance policy worth 500 million VND. Beneficiary: family members.",
			map[string]interface{}{"category": "purchase_history", "product": "life"})
		if err != nil {
			return err
		}
	}

	err := a.knowledge.AddDocument(ctx, "interaction_last_tet",
		fmt.Sprintf("Last Tet, customer %s inquired about travel insurance but didn't purchase. Mentioned budget concerns.", p.Name),
		map[string]interface{}{"category": "interaction_history", "event": "last_tet"})
	if err != nil {
		return err
	}

	if len(p.TravelHistory) > 0 {
		err := a.knowledge.AddDocument(ctx, "behavior_travel",
			fmt.Sprintf("Customer loves traveling. Recent destinations: %s. Travels 2-3 times per year. Prefers domestic destinations.", strings.Join(p.TravelHistory, ", ")),
			map[string]interface{}{"category": "behavior", "interest": "travel"})
		if err != nil {
			return err
		}
	}

	err = a.knowledge.AddDocument(ctx, "profile_demographics",
		fmt.Sprintf("%s, %d years old, %s. Income level: %s. Tet plans: %s", p.Name, p.Age, p.Segment, p.IncomeLevel(), p.PlansOrDefault()),
		map[string]interface{}{"category": "demographics"})
	if err != nil {
		return err
	}

	return a.knowledge.AddDocument(ctx, "profile_communication",
		fmt.Sprintf("Customer prefers %s communication style. Responds well to personalized offers. Active on Zalo and Facebook.", p.Tone),
		map[string]interface{}{"category": "communication"})
}

func (a *Agent) seedProducts(ctx context.Context) error {
	for _, product := range catalog.All() {
		content := fmt.Sprintf("%s: %s Price: %s VND. Coverage: %s. Best for: %s",
			product.Name, product.Description, catalog.FormatVND(product.BasePrice), product.Coverage, product.BestFor)

		err := a.knowledge.AddDocument(ctx, "product_"+product.ID, content,
			map[string]interface{}{"category": "product", "product_id": product.ID})
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Agent) seedSeasonalInsights(ctx context.Context) error {
	insights := []struct {
		id      string
		content string
	}{
		{"tet_travel_peak", "During Tet, traffic accidents increase by 40%. Highway travel is especially risky. Extended motor insurance is crucial."},
		{"tet_family_gathering", "Tet is time for family reunion. Many people host large gatherings, increasing health risks. Family health packages popular."},
		{"tet_gift_insurance", "Insurance as Tet gift is becoming popular. Shows care for loved ones. Life insurance and health insurance most gifted."},
		{"tet_budget", "People receive bonuses before Tet. Good time to invest in insurance. Many willing to spend on protection."},
		{"tet_discount", fmt.Sprintf("Special Tet promotions available. %d%% discount during %s phase.", a.phase.DiscountPercent(), a.phase)},
	}

	for _, insight := range insights {
		err := a.knowledge.AddDocument(ctx, insight.id, insight.content,
			map[string]interface{}{"category": "tet_insights"})
		if err != nil {
			return err
		}
	}
	return nil
}
