package charfreq

import (
	"strings"
	"unicode"
)

// alphabet is the fixed character set whose relative frequencies make up the
// leading dimensions of every vector: Latin letters, digits, space, and the
// accented Vietnamese vowels (plus đ) the domain vocabulary uses. The order
// is part of the vector layout and must not change.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789 àáảãạăắằẳẵặâấầẩẫậèéẻẽẹêếềểễệìíỉĩịòóỏõọôốồổỗộơớờởỡợùúủũụưứừửữựỳýỷỹỵđ"

// keywordFeatures is the fixed list of domain phrase groups tested for
// presence, one vector dimension each, in this order. Each group lists the
// Vietnamese and English forms of one concept.
var keywordFeatures = [][]string{
	{"bảo hiểm"},
	{"giá", "price"},
	{"tết", "tet"},
	{"du lịch", "travel"},
	{"tai nạn", "accident"},
	{"gia đình", "family"},
	{"claim", "bồi thường"},
}

// keywordFeatureCount mirrors len(keywordFeatures) as an untyped constant so
// extraFeatures stays constant; a test asserts the two never drift apart.
const keywordFeatureCount = 7

// extraFeatures is the number of handcrafted dimensions appended after the
// character frequencies: text length, whitespace density, the keyword flags
// and the uppercase-density slot.
const extraFeatures = 3 + keywordFeatureCount

// Vectorizer embeds text as character-level relative frequencies plus a fixed
// set of handcrafted features. It is pure and deterministic and carries no
// state, so a single value can be shared freely.
type Vectorizer struct {
	runes []rune
}

// New returns a character-frequency vectorizer over the fixed domain alphabet.
func New() *Vectorizer {
	return &Vectorizer{runes: []rune(alphabet)}
}

// Dimensions implements embedding.Vectorizer.
func (v *Vectorizer) Dimensions() int {
	return len(v.runes) + extraFeatures
}

// Embed implements embedding.Vectorizer. Input is trimmed and case-folded
// before any counting, so case variants of the same text embed identically.
// Empty text yields zero frequencies (the length divisor is floored at 1).
func (v *Vectorizer) Embed(text string) []float32 {
	raw := strings.TrimSpace(text)
	folded := strings.ToLower(raw)
	foldedRunes := []rune(folded)

	length := len(foldedRunes)
	divisor := float32(length)
	if divisor < 1 {
		divisor = 1
	}

	vec := make([]float32, v.Dimensions())

	counts := make(map[rune]int, length)
	for _, r := range foldedRunes {
		counts[r]++
	}
	for i, r := range v.runes {
		vec[i] = float32(counts[r]) / divisor
	}

	base := len(v.runes)

	// Text length, normalized against a nominal 100-character message
	vec[base] = float32(length) / 100.0

	// Whitespace density
	vec[base+1] = float32(strings.Count(folded, " ")) / divisor

	// Domain keyword presence flags
	for i, group := range keywordFeatures {
		for _, phrase := range group {
			if strings.Contains(folded, phrase) {
				vec[base+2+i] = 1
				break
			}
		}
	}

	// Uppercase-density slot, measured after folding. Folding leaves no
	// uppercase runes, so the value is always zero; the dimension is kept
	// for vector-layout stability.
	upper := 0
	for _, r := range foldedRunes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	vec[base+2+len(keywordFeatures)] = float32(upper) / divisor

	return vec
}
