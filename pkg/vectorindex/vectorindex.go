package vectorindex

import (
	"math"
	"sort"

	"github.com/insurevn/tetadvisor/pkg/errors"
)

// Result is a single ranked search hit.
type Result struct {
	// ID is the identifier the entry was added under
	ID string

	// Payload is the opaque value stored alongside the vector
	Payload interface{}

	// Score is the cosine similarity against the query, in [-1, 1]
	Score float64
}

type entry struct {
	id      string
	vector  []float32
	payload interface{}
}

// Index stores (id, vector, payload) triples and ranks them against a query
// vector by cosine similarity. Lookup is a linear scan, O(n*D) per search,
// which is appropriate for corpora of up to a few hundred documents; larger
// corpora need a real vector database behind the knowledge.Store interface.
//
// Index is not safe for concurrent use; the advisory core owns one per
// session and never shares it.
type Index struct {
	dimensions int
	entries    []entry
	byID       map[string]int
}

// New creates an empty index for vectors of the given dimensionality.
func New(dimensions int) *Index {
	return &Index{
		dimensions: dimensions,
		byID:       make(map[string]int),
	}
}

// Len returns the number of entries in the index.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Add inserts a vector with its payload. Re-adding an existing id replaces
// the stored vector and payload in place, keeping the original insertion
// position so that tie-breaking stays stable across re-seeding.
func (ix *Index) Add(id string, vector []float32, payload interface{}) error {
	if len(vector) != ix.dimensions {
		return errors.Wrap(errors.ErrDimensionMismatch, "add %q: got %d dimensions, index has %d", id, len(vector), ix.dimensions)
	}

	if pos, ok := ix.byID[id]; ok {
		ix.entries[pos] = entry{id: id, vector: vector, payload: payload}
		return nil
	}

	ix.byID[id] = len(ix.entries)
	ix.entries = append(ix.entries, entry{id: id, vector: vector, payload: payload})
	return nil
}

// Search ranks all entries against the query vector and returns the top k by
// descending cosine similarity, ties broken by insertion order. It returns
// min(k, Len()) results; an empty index yields an empty slice, never an
// error — empty retrieval must not block a turn.
func (ix *Index) Search(query []float32, k int) ([]Result, error) {
	if len(query) != ix.dimensions {
		return nil, errors.Wrap(errors.ErrDimensionMismatch, "search: got %d dimensions, index has %d", len(query), ix.dimensions)
	}
	if k <= 0 || len(ix.entries) == 0 {
		return []Result{}, nil
	}

	results := make([]Result, len(ix.entries))
	for i, e := range ix.entries {
		score, _ := Cosine(query, e.vector)
		results[i] = Result{ID: e.id, Payload: e.payload, Score: score}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Cosine computes the cosine similarity between two vectors of equal length.
// It is exactly 0.0 when either vector has zero norm, which guards the NaN
// that a naive division would produce for empty-text embeddings.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Wrap(errors.ErrDimensionMismatch, "cosine: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0.0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
