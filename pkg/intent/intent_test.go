package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	t.Run("pricing question in Vietnamese", func(t *testing.T) {
		tags := c.Classify("Giá bảo hiểm gia đình bao nhiêu?")
		assert.Equal(t, []Tag{TagPricing}, tags)
	})

	t.Run("travel keywords", func(t *testing.T) {
		tags := c.Classify("Tôi muốn mua bảo hiểm du lịch")
		assert.Equal(t, []Tag{TagTravel}, tags)

		tags = c.Classify("I need travel insurance for my trip")
		assert.Equal(t, []Tag{TagTravel}, tags)
	})

	t.Run("claim keywords", func(t *testing.T) {
		tags := c.Classify("Tôi bị tai nạn, cần bồi thường")
		assert.Equal(t, []Tag{TagClaim}, tags)

		tags = c.Classify("how do I file a claim?")
		assert.Equal(t, []Tag{TagClaim}, tags)
	})

	t.Run("affirmative and negative", func(t *testing.T) {
		assert.Equal(t, []Tag{TagAffirmative}, c.Classify("ok, đồng ý"))
		assert.Equal(t, []Tag{TagNegative}, c.Classify("thôi, đắt quá"))
		assert.Equal(t, []Tag{TagNegative}, c.Classify("too expensive for me"))
	})

	t.Run("multiple tags fire together", func(t *testing.T) {
		tags := c.Classify("bao nhiêu tiền cho chuyến du lịch?")
		assert.Contains(t, tags, TagTravel)
		assert.Contains(t, tags, TagPricing)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		assert.Equal(t, []Tag{TagPricing}, c.Classify("WHAT IS THE PRICE?"))
	})

	t.Run("no trigger yields empty set", func(t *testing.T) {
		assert.Empty(t, c.Classify("xin chào"))
	})

	t.Run("empty text yields empty set", func(t *testing.T) {
		assert.Empty(t, c.Classify(""))
	})
}

func TestClassifyDeterministicOrder(t *testing.T) {
	c := NewClassifier()

	// all five families in one message, returned in fixed priority order
	text := "tai nạn du lịch giá yes không"
	tags := c.Classify(text)
	require.Equal(t, []Tag{TagClaim, TagTravel, TagPricing, TagAffirmative, TagNegative}, tags)
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		name string
		tags []Tag
		want Tag
		ok   bool
	}{
		{"claim outranks travel", []Tag{TagTravel, TagClaim}, TagClaim, true},
		{"travel outranks pricing", []Tag{TagPricing, TagTravel}, TagTravel, true},
		{"pricing outranks affirmative", []Tag{TagAffirmative, TagPricing}, TagPricing, true},
		{"affirmative outranks negative", []Tag{TagNegative, TagAffirmative}, TagAffirmative, true},
		{"single tag wins", []Tag{TagNegative}, TagNegative, true},
		{"empty set has no primary", nil, Tag(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Primary(tt.tags)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCustomTriggers(t *testing.T) {
	c := NewClassifierWithTriggers(map[Tag][]string{
		TagPricing: {"quote"},
	})

	assert.Equal(t, []Tag{TagPricing}, c.Classify("please send a quote"))
	assert.Empty(t, c.Classify("giá bao nhiêu"))
	assert.True(t, c.Matches(TagPricing, "QUOTE me"))
	assert.False(t, c.Matches(TagTravel, "trip"))
}
