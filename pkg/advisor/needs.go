package advisor

import (
	"fmt"
	"strings"

	"github.com/insurevn/tetadvisor/pkg/catalog"
	"github.com/insurevn/tetadvisor/pkg/profile"
)

// Kind labels which rule produced a recommendation.
type Kind string

// Recommendation kinds
const (
	KindTravel   Kind = "travel"
	KindFamily   Kind = "family"
	KindMotor    Kind = "motor"
	KindBusiness Kind = "business"
)

// Recommendation is one rule hit: a customer-facing reason plus the product
// IDs the rule suggests, most relevant first.
type Recommendation struct {
	Kind     Kind
	Reason   string
	Products []string
}

// AnalyzeNeeds runs the needs rules against a profile and returns the
// recommendations in rule order. The order is part of the contract: rule-mode
// replies always lead with the first recommendation, so travel outranks
// family, which outranks motor, which outranks business.
func AnalyzeNeeds(p profile.CustomerProfile) []Recommendation {
	var recs []Recommendation

	plans := p.TetPlans
	plansLower := strings.ToLower(plans)

	// trip planned but no travel cover
	if (strings.Contains(plans, "Traveling") || strings.Contains(plansLower, "trip")) && !p.HasTravel {
		recs = append(recs, Recommendation{
			Kind:     KindTravel,
			Reason:   fmt.Sprintf("Bạn đang có kế hoạch: %s", plans),
			Products: []string{catalog.TravelDomestic, catalog.MotorExtension},
		})
	}

	// household of three or more without life cover
	if p.FamilySize > 2 && !p.HasLife {
		recs = append(recs, Recommendation{
			Kind:     KindFamily,
			Reason:   "Bảo vệ gia đình trong dịp Tết",
			Products: []string{catalog.FamilyHealth, catalog.LifeSavings},
		})
	}

	// long ride home on an insured motorbike
	if p.HasMotor && strings.Contains(plansLower, "km") {
		recs = append(recs, Recommendation{
			Kind:     KindMotor,
			Reason:   "Hành trình dài cần bảo vệ tốt hơn",
			Products: []string{catalog.MotorExtension, catalog.Accident},
		})
	}

	// business left unattended over the holiday
	if p.Business != "" {
		recs = append(recs, Recommendation{
			Kind:     KindBusiness,
			Reason:   "Bảo vệ doanh nghiệp trong dịp nghỉ Tết",
			Products: []string{catalog.Accident, catalog.LifeSavings},
		})
	}

	return recs
}
