package embedding

// Vectorizer converts a text string into a fixed-length feature vector.
//
// Implementations must be pure and deterministic: the same input text always
// yields the bit-identical vector, and the dimensionality is fixed at
// construction time. That property is what makes retrieval results
// reproducible across turns and across test runs.
//
// The character-frequency implementation in the charfreq subpackage is
// intentionally a swappable leaf: a real sentence-embedding model (see the
// generation.Engine embedding support) can be substituted behind this
// contract without changing any other component.
type Vectorizer interface {
	// Embed converts text into a feature vector of length Dimensions.
	Embed(text string) []float32

	// Dimensions returns the fixed vector length.
	Dimensions() int
}
