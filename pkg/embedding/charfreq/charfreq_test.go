package charfreq

import (
	"testing"

	"github.com/insurevn/tetadvisor/pkg/vectorindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterminism(t *testing.T) {
	v := New()

	a := v.Embed("Giá bảo hiểm du lịch bao nhiêu?")
	b := v.Embed("Giá bảo hiểm du lịch bao nhiêu?")
	assert.Equal(t, a, b)
	assert.Len(t, a, v.Dimensions())
}

func TestEmptyText(t *testing.T) {
	v := New()

	vec := v.Embed("")
	require.Len(t, vec, v.Dimensions())
	for i, val := range vec {
		assert.Zero(t, val, "dimension %d of the empty-text vector", i)
	}

	// Whitespace-only input trims down to empty as well
	assert.Equal(t, vec, v.Embed("   "))
}

func TestCaseFolding(t *testing.T) {
	v := New()

	// Folding happens before any counting, so case variants embed
	// identically and their cosine similarity is exactly 1.
	assert.Equal(t, v.Embed("giá"), v.Embed("GIÁ"))

	score, err := vectorindex.Cosine(v.Embed("Giá"), v.Embed("giá"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)

	mixed, err := vectorindex.Cosine(v.Embed("BẢO HIỂM Du Lịch"), v.Embed("bảo hiểm du lịch"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mixed, 1e-12)
}

func TestKeywordFeatureCount(t *testing.T) {
	// extraFeatures is built from this constant; the table and the
	// constant must agree or the vector layout silently shifts.
	assert.Equal(t, keywordFeatureCount, len(keywordFeatures))
}

func TestKeywordFeatures(t *testing.T) {
	v := New()
	base := v.Dimensions() - extraFeatures

	vec := v.Embed("Tôi muốn đi du lịch, giá bao nhiêu?")

	// giá fires, travel fires, accident does not
	assert.Equal(t, float32(1), vec[base+3], "price flag")
	assert.Equal(t, float32(1), vec[base+5], "travel flag")
	assert.Equal(t, float32(0), vec[base+6], "accident flag")

	// English synonyms fire the same dimension
	en := v.Embed("what is the price of travel cover")
	assert.Equal(t, float32(1), en[base+3], "price flag via english")
	assert.Equal(t, float32(1), en[base+5], "travel flag via english")
}

func TestRelatedTextsScoreHigher(t *testing.T) {
	v := New()

	query := v.Embed("giá bảo hiểm du lịch")
	travelDoc := v.Embed("Domestic Travel Insurance: du lịch coverage for trips within Vietnam, giá 150,000 VND")
	lifeDoc := v.Embed("Life insurance policy worth 500 million VND. Beneficiary: family members.")

	travelScore, err := vectorindex.Cosine(query, travelDoc)
	require.NoError(t, err)
	lifeScore, err := vectorindex.Cosine(query, lifeDoc)
	require.NoError(t, err)

	assert.Greater(t, travelScore, lifeScore)
}
