package intent

import (
	"strings"
)

// Tag is a label attached to user text by keyword-matching rules.
type Tag string

// Intent tags
const (
	TagClaim       Tag = "claim"
	TagTravel      Tag = "travel"
	TagPricing     Tag = "pricing"
	TagAffirmative Tag = "affirmative"
	TagNegative    Tag = "negative"
)

// priority is the fixed tag order used when a single branch must be picked:
// claim outranks everything because it may be urgent, sales branches follow.
var priority = []Tag{TagClaim, TagTravel, TagPricing, TagAffirmative, TagNegative}

// defaultTriggers is the declarative tag -> trigger-phrase table. Matching is
// case-folded substring membership; each phrase lists a Vietnamese or English
// form of the tag's concept. Bare "đi" (to go) is deliberately absent from
// the travel triggers: as a substring it false-fires on "gia đình" and
// similar words. The negative triggers merge refusals (no, không, cancel,
// thôi) with price objections (expensive, đắt): one table drives both the
// reply branch and the concern memory item, so a price objection gets the
// polite close and is recorded as a concern in the same turn.
var defaultTriggers = map[Tag][]string{
	TagClaim:       {"tai nạn", "accident", "claim", "bồi thường"},
	TagTravel:      {"du lịch", "travel", "trip"},
	TagPricing:     {"giá", "price", "bao nhiêu", "cost"},
	TagAffirmative: {"yes", "có", "ok", "được", "đồng ý", "sure"},
	TagNegative:    {"no", "không", "cancel", "thôi", "expensive", "đắt"},
}

// Classifier maps raw user text to zero or more intent tags. Classification
// is a pure function of the text and the trigger table; every tag is tested
// independently and multiple tags may fire on one message.
type Classifier struct {
	triggers map[Tag][]string
}

// NewClassifier returns a classifier over the built-in trigger table.
func NewClassifier() *Classifier {
	return &Classifier{triggers: defaultTriggers}
}

// NewClassifierWithTriggers returns a classifier over a caller-supplied
// table. Tags absent from the priority list still classify; they just never
// win Primary.
func NewClassifierWithTriggers(triggers map[Tag][]string) *Classifier {
	return &Classifier{triggers: triggers}
}

// Classify returns the set of tags whose trigger phrases occur in the
// case-folded text, in fixed priority order for determinism.
func (c *Classifier) Classify(text string) []Tag {
	folded := strings.ToLower(text)

	var tags []Tag
	for _, tag := range priority {
		if c.matches(tag, folded) {
			tags = append(tags, tag)
		}
	}

	// Tags outside the priority list (custom tables) appended in
	// lexicographic-free map order would be nondeterministic; collect the
	// known ones first and skip unknowns here. Custom tags are matched via
	// Matches instead.
	return tags
}

// Matches reports whether the given tag's triggers occur in the text.
func (c *Classifier) Matches(tag Tag, text string) bool {
	return c.matches(tag, strings.ToLower(text))
}

func (c *Classifier) matches(tag Tag, foldedText string) bool {
	for _, phrase := range c.triggers[tag] {
		if strings.Contains(foldedText, phrase) {
			return true
		}
	}
	return false
}

// Primary picks the single highest-priority tag from a classified set,
// in the fixed order claim > travel > pricing > affirmative > negative.
// It returns false when no tag fired.
func Primary(tags []Tag) (Tag, bool) {
	fired := make(map[Tag]bool, len(tags))
	for _, tag := range tags {
		fired[tag] = true
	}

	for _, tag := range priority {
		if fired[tag] {
			return tag, true
		}
	}
	return "", false
}

// Has reports whether the tag set contains the given tag.
func Has(tags []Tag, tag Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
