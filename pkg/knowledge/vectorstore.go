package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/insurevn/tetadvisor/pkg/embedding"
	"github.com/insurevn/tetadvisor/pkg/log"
	"github.com/insurevn/tetadvisor/pkg/vectorindex"
)

// VectorStore is the default Store implementation: documents embedded by a
// Vectorizer and ranked by an in-memory linear similarity index. Document
// order and index order are kept in lockstep — one entry per document at the
// same position — which is the store's core invariant.
type VectorStore struct {
	vectorizer embedding.Vectorizer
	index      *vectorindex.Index
	docs       []Document
	byID       map[string]int
	now        func() time.Time
}

// NewVectorStore creates an empty store over the given vectorizer.
func NewVectorStore(vectorizer embedding.Vectorizer) *VectorStore {
	return &VectorStore{
		vectorizer: vectorizer,
		index:      vectorindex.New(vectorizer.Dimensions()),
		byID:       make(map[string]int),
		now:        time.Now,
	}
}

// AddDocument implements Store. Duplicate ids overwrite the stored document
// in place (last write wins), keeping the original insertion position so
// that seeding the store twice is a no-op for ordering and length.
func (s *VectorStore) AddDocument(ctx context.Context, id, content string, metadata map[string]interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	doc := Document{
		ID:        id,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: s.now(),
	}

	vector := s.vectorizer.Embed(content)
	if err := s.index.Add(id, vector, id); err != nil {
		return fmt.Errorf("failed to index document %q: %w", id, err)
	}

	if pos, ok := s.byID[id]; ok {
		s.docs[pos] = doc
		log.DebugContext(ctx, "Overwrote knowledge document", "id", id)
		return nil
	}

	s.byID[id] = len(s.docs)
	s.docs = append(s.docs, doc)
	return nil
}

// Search implements Store.
func (s *VectorStore) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if len(s.docs) == 0 {
		return []SearchResult{}, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	hits, err := s.index.Search(s.vectorizer.Embed(query), topK)
	if err != nil {
		return nil, fmt.Errorf("knowledge search failed: %w", err)
	}

	results := make([]SearchResult, len(hits))
	for i, hit := range hits {
		doc := s.docs[s.byID[hit.ID]]
		results[i] = SearchResult{Document: doc, SimilarityScore: hit.Score}
	}

	log.DebugContext(ctx, "Knowledge search completed",
		"query_length", len(query),
		"results", len(results),
	)
	return results, nil
}

// ListAll implements Store.
func (s *VectorStore) ListAll(ctx context.Context) ([]Document, error) {
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

// Len implements Store.
func (s *VectorStore) Len() int {
	return len(s.docs)
}
