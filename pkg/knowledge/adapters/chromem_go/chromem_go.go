package chromem_go

import (
	"context"
	"fmt"
	"time"

	"github.com/insurevn/tetadvisor/pkg/embedding"
	"github.com/insurevn/tetadvisor/pkg/knowledge"
	"github.com/insurevn/tetadvisor/pkg/log"
	chromem "github.com/philippgille/chromem-go"
)

// ChromemGoAdapter implements knowledge.Store on top of an embedded
// chromem-go database. It exists as an alternate backend for corpora that
// outgrow the linear index; the default VectorStore stays the reference
// implementation for ranking semantics.
//
// chromem-go keys documents by id internally, so re-adding an id overwrites
// the stored document there too; the adapter keeps a shadow list to preserve
// insertion order for ListAll, which chromem-go does not expose.
type ChromemGoAdapter struct {
	collection *chromem.Collection
	docs       []knowledge.Document
	byID       map[string]int
}

// NewChromemGoAdapter creates an adapter over the given chromem-go database,
// embedding documents with the provided vectorizer.
func NewChromemGoAdapter(db *chromem.DB, collectionName string, vectorizer embedding.Vectorizer) (*ChromemGoAdapter, error) {
	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return vectorizer.Embed(text), nil
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create chromem collection %q: %w", collectionName, err)
	}

	log.Debug("Initialized chromem-go knowledge store adapter", "collection", collectionName)

	return &ChromemGoAdapter{
		collection: collection,
		byID:       make(map[string]int),
	}, nil
}

// AddDocument implements knowledge.Store.
func (a *ChromemGoAdapter) AddDocument(ctx context.Context, id, content string, metadata map[string]interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	err := a.collection.AddDocument(ctx, chromem.Document{
		ID:       id,
		Content:  content,
		Metadata: stringifyMetadata(metadata),
	})
	if err != nil {
		return fmt.Errorf("failed to add document %q: %w", id, err)
	}

	doc := knowledge.Document{
		ID:        id,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}

	if pos, ok := a.byID[id]; ok {
		a.docs[pos] = doc
		return nil
	}
	a.byID[id] = len(a.docs)
	a.docs = append(a.docs, doc)
	return nil
}

// Search implements knowledge.Store.
func (a *ChromemGoAdapter) Search(ctx context.Context, query string, topK int) ([]knowledge.SearchResult, error) {
	if len(a.docs) == 0 {
		return []knowledge.SearchResult{}, nil
	}
	if topK <= 0 {
		topK = knowledge.DefaultTopK
	}

	// chromem-go rejects nResults larger than the collection size
	n := topK
	if count := a.collection.Count(); n > count {
		n = count
	}

	hits, err := a.collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query failed: %w", err)
	}

	results := make([]knowledge.SearchResult, 0, len(hits))
	for _, hit := range hits {
		pos, ok := a.byID[hit.ID]
		if !ok {
			continue
		}
		results = append(results, knowledge.SearchResult{
			Document:        a.docs[pos],
			SimilarityScore: float64(hit.Similarity),
		})
	}
	return results, nil
}

// ListAll implements knowledge.Store.
func (a *ChromemGoAdapter) ListAll(ctx context.Context) ([]knowledge.Document, error) {
	out := make([]knowledge.Document, len(a.docs))
	copy(out, a.docs)
	return out, nil
}

// Len implements knowledge.Store.
func (a *ChromemGoAdapter) Len() int {
	return len(a.docs)
}

func stringifyMetadata(metadata map[string]interface{}) map[string]string {
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}
