package vectorindex

import (
	"fmt"
	"testing"

	"github.com/insurevn/tetadvisor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"zero left", []float32{0, 0}, []float32{1, 2}, 0.0},
		{"zero right", []float32{1, 2}, []float32{0, 0}, 0.0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Cosine(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}

	_, err := Cosine([]float32{1}, []float32{1, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))
}

func TestCosineSymmetryAndBounds(t *testing.T) {
	vectors := [][]float32{
		{0.1, 0.2, 0.3},
		{-1, 4, 0.5},
		{2, 2, 2},
		{0, 0, 0},
	}

	for i, a := range vectors {
		for j, b := range vectors {
			ab, err := Cosine(a, b)
			require.NoError(t, err)
			ba, err := Cosine(b, a)
			require.NoError(t, err)

			assert.Equal(t, ab, ba, "cosine(%d,%d) must be symmetric", i, j)
			assert.GreaterOrEqual(t, ab, -1.0-1e-9)
			assert.LessOrEqual(t, ab, 1.0+1e-9)
		}
	}
}

func TestSearchOrderingAndLimit(t *testing.T) {
	ix := New(2)

	require.NoError(t, ix.Add("east", []float32{1, 0}, "east"))
	require.NoError(t, ix.Add("north", []float32{0, 1}, "north"))
	require.NoError(t, ix.Add("northeast", []float32{1, 1}, "northeast"))

	results, err := ix.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "east", results[0].ID)
	assert.Equal(t, "northeast", results[1].ID)
	assert.Equal(t, "north", results[2].ID)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	// k larger than the index returns everything; smaller k truncates
	results, err = ix.Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = ix.Search([]float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "east", results[0].ID)
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	ix := New(2)

	// All entries score identically against the query
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("doc-%d", i)
		require.NoError(t, ix.Add(id, []float32{1, 1}, id))
	}

	results, err := ix.Search([]float32{1, 1}, 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("doc-%d", i), r.ID)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	ix := New(3)

	results, err := ix.Search([]float32{1, 2, 3}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddOverwritesSameID(t *testing.T) {
	ix := New(2)

	require.NoError(t, ix.Add("doc", []float32{1, 0}, "old"))
	require.NoError(t, ix.Add("doc", []float32{0, 1}, "new"))

	assert.Equal(t, 1, ix.Len())

	results, err := ix.Search([]float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new", results[0].Payload)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestAddDimensionMismatch(t *testing.T) {
	ix := New(3)

	err := ix.Add("bad", []float32{1, 2}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))
	assert.Zero(t, ix.Len())
}
