package knowledge

import (
	"context"
	"time"
)

// Default retrieval tuning. The relevance floor is the fixed threshold below
// which a search hit is considered noise and excluded from assembled
// contexts. 0.1 keeps weak matches out of prompts without starving them; it
// is a tunable constant, not a derived value.
const (
	DefaultTopK           = 3
	DefaultRelevanceFloor = 0.1
)

// Document is one short free-text knowledge entry with its metadata.
// Documents are immutable once added; superseding a document means re-adding
// it under the same id (last write wins).
type Document struct {
	// ID is the unique document identifier
	ID string

	// Content is the document text
	Content string

	// Metadata is additional structured data about the document
	Metadata map[string]interface{}

	// CreatedAt is when the document was (last) added
	CreatedAt time.Time
}

// SearchResult is a document with its similarity score against a query.
type SearchResult struct {
	Document

	// SimilarityScore is the cosine similarity of the document against the
	// query embedding, in [-1, 1]
	SimilarityScore float64
}

// Store is the interface all knowledge store backends implement. Searching an
// empty store returns an empty slice, never an error, so that retrieval can
// never block a conversation turn.
//
// Stores are not safe for concurrent use; the advisory core owns one per
// session.
type Store interface {
	// AddDocument embeds content and stores it with its metadata and a
	// timestamp. Re-adding an existing id overwrites the previous document.
	AddDocument(ctx context.Context, id, content string, metadata map[string]interface{}) error

	// Search returns up to topK documents ranked by descending similarity
	// to the query text.
	Search(ctx context.Context, query string, topK int) ([]SearchResult, error)

	// ListAll returns every document in insertion order.
	ListAll(ctx context.Context) ([]Document, error)

	// Len returns the number of stored documents.
	Len() int
}
