package phase

import (
	"math"
	"strings"

	"github.com/insurevn/tetadvisor/pkg/errors"
)

// Phase represents a stage of the Tet business calendar. Each phase is bound
// to a fixed discount rate and a messaging focus that flows into both the
// rule-only replies and the generation-mode prompt context.
type Phase string

// Tet season phases
const (
	// PreTet is the planning phase, mid-December to late January.
	PreTet Phase = "pre-tet"

	// Peak covers one week before to one week after Tet itself.
	Peak Phase = "tet-peak"

	// PostTet is the follow-up season, February onwards.
	PostTet Phase = "post-tet"
)

// Discount rates per phase. These are business constants, not tunables;
// changing them changes quoted prices everywhere.
const (
	peakDiscount    = 0.30
	preTetDiscount  = 0.15
	postTetDiscount = 0.10
)

// Info describes a phase for display and prompt-building purposes.
type Info struct {
	// Name is the human-readable phase name
	Name string

	// Dates describes the calendar window of the phase
	Dates string

	// Focus is the messaging focus during the phase
	Focus string

	// Offers summarizes the promotional mechanics active in the phase
	Offers string
}

var phaseInfo = map[Phase]Info{
	PreTet: {
		Name:   "Pre-Tet Planning",
		Dates:  "Mid-December to Late January",
		Focus:  "Preparation, Protection, Smart Spending",
		Offers: "Early bird discounts, Bundle deals",
	},
	Peak: {
		Name:   "Tet Holiday Peak",
		Dates:  "1 week before to 1 week after Tet",
		Focus:  "Emergency support, Quick purchase",
		Offers: "Flash sales, Instant coverage, 24/7 claims",
	},
	PostTet: {
		Name:   "Post-Tet Season",
		Dates:  "February onwards",
		Focus:  "New year resolutions, Claim follow-ups",
		Offers: "Renewal reminders, Year-long protection",
	},
}

var phaseContext = map[Phase]string{
	PreTet:  "We are in the Pre-Tet planning phase (Mid-December to Late January). Focus on preparation and early bird offers. Customers are planning their Tet activities.",
	Peak:    "We are in the Tet Holiday Peak (1 week before to 1 week after Tet). This is urgent time with flash sales and instant coverage needs. Customers are actively traveling and celebrating.",
	PostTet: "We are in the Post-Tet season (February onwards). Focus on follow-ups, renewals, and new year resolutions. Customers are back to normal routine.",
}

// Parse converts a phase name into a Phase. It accepts the canonical
// hyphenated forms as well as the short forms "pre", "peak" and "post".
func Parse(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PreTet), "pre":
		return PreTet, nil
	case string(Peak), "peak", "tet":
		return Peak, nil
	case string(PostTet), "post":
		return PostTet, nil
	default:
		return "", errors.Wrap(errors.ErrUnknownPhase, "parse %q", s)
	}
}

// Valid reports whether p is one of the three known phases.
func (p Phase) Valid() bool {
	_, ok := phaseInfo[p]
	return ok
}

// Discount returns the discount rate active during the phase, in [0, 1).
func (p Phase) Discount() float64 {
	switch p {
	case Peak:
		return peakDiscount
	case PreTet:
		return preTetDiscount
	default:
		return postTetDiscount
	}
}

// DiscountPercent returns the discount as a whole percentage for display.
func (p Phase) DiscountPercent() int {
	return int(math.Round(p.Discount() * 100))
}

// Info returns the display description of the phase.
func (p Phase) Info() Info {
	return phaseInfo[p]
}

// Context returns the one-line situational description of the phase used in
// assembled contexts and system prompts.
func (p Phase) Context() string {
	return phaseContext[p]
}

// EffectivePrice applies the phase discount to a base price in VND and
// truncates to whole currency units. A higher-discount phase never yields a
// higher price for the same base.
func (p Phase) EffectivePrice(basePrice int64) int64 {
	return int64(math.Floor(float64(basePrice) * (1 - p.Discount())))
}
