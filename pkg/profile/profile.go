package profile

import (
	"fmt"
	"strings"

	"github.com/insurevn/tetadvisor/pkg/errors"
)

// CustomerProfile describes the customer a session is advising. The profile
// is read-only input to the core: it is owned by the calling session and is
// never mutated by any component.
type CustomerProfile struct {
	// Name is the customer's display name. Required.
	Name string `yaml:"name"`

	// Age in years. Required (must be positive).
	Age int `yaml:"age"`

	// Segment is the marketing segment, e.g. "Young Professional". Required.
	Segment string `yaml:"segment"`

	// Tone is the preferred communication tone: casual, friendly, formal
	// or professional. Required.
	Tone string `yaml:"tone"`

	// Greeting is the personalized Tet salutation used by the rule-only
	// renderer. Optional; a neutral greeting is used when empty.
	Greeting string `yaml:"greeting"`

	// Existing coverage flags
	HasMotor  bool `yaml:"has_motor"`
	HasHealth bool `yaml:"has_health"`
	HasLife   bool `yaml:"has_life"`
	HasTravel bool `yaml:"has_travel"`

	// Income is a coarse income level: low, medium or high.
	Income string `yaml:"income"`

	// TravelHistory lists recent destinations, most recent last.
	TravelHistory []string `yaml:"travel_history"`

	// TetPlans is the customer's free-text plan for the holiday.
	TetPlans string `yaml:"tet_plans"`

	// FamilySize is the household size including the customer. Zero when
	// unknown.
	FamilySize int `yaml:"family_size"`

	// Children is the number of children in the household.
	Children int `yaml:"children"`

	// Business names the customer's business, when they own one.
	Business string `yaml:"business"`
}

// Validate checks that the profile carries the minimum identity fields the
// core requires. Missing fields are fatal at construction time; the core
// never silently defaults identity.
func (p CustomerProfile) Validate() error {
	var missing []string

	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if p.Age <= 0 {
		missing = append(missing, "age")
	}
	if strings.TrimSpace(p.Segment) == "" {
		missing = append(missing, "segment")
	}
	if strings.TrimSpace(p.Tone) == "" {
		missing = append(missing, "tone")
	}

	if len(missing) > 0 {
		return errors.Wrap(errors.ErrInvalidProfile, "missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Summary returns the one-line profile description used as the first line of
// every assembled context.
func (p CustomerProfile) Summary() string {
	return fmt.Sprintf("%s, %d years old, %s", p.Name, p.Age, p.Segment)
}

// IncomeLevel returns the income level, defaulting to "medium" when unset.
func (p CustomerProfile) IncomeLevel() string {
	if p.Income == "" {
		return "medium"
	}
	return p.Income
}

// PlansOrDefault returns the Tet plans text or a fixed placeholder.
func (p CustomerProfile) PlansOrDefault() string {
	if strings.TrimSpace(p.TetPlans) == "" {
		return "Not specified"
	}
	return p.TetPlans
}
