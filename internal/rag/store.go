package rag

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/docchat-ai/docchat/pkg/logging"
)

// Embedder produces vectors for documents and queries.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// MemoryStore keeps chunk embeddings in memory and supports simple cosine
// retrieval. One store serves the whole process; uploads replace nothing,
// they accumulate.
type MemoryStore struct {
	embedder Embedder
	logger   *logging.Logger

	mu   sync.RWMutex
	docs []storedChunk
}

type storedChunk struct {
	content   string
	embedding []float32
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(embedder Embedder, logger *logging.Logger) *MemoryStore {
	if embedder == nil {
		panic("rag: embedder cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MemoryStore{embedder: embedder, logger: logger}
}

// AddDocuments embeds and stores the provided chunks.
func (s *MemoryStore) AddDocuments(ctx context.Context, chunks []string) error {
	if len(chunks) == 0 {
		return nil
	}

	vecs, err := s.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return err
	}
	if len(vecs) != len(chunks) {
		return errors.New("rag: embedding count mismatch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, chunk := range chunks {
		s.docs = append(s.docs, storedChunk{content: chunk, embedding: vecs[i]})
	}
	s.logger.Info("rag: documents indexed", "chunks", len(chunks), "total", len(s.docs))
	return nil
}

// Query returns the topK most similar chunks for the query.
func (s *MemoryStore) Query(ctx context.Context, query string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 4
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.docs) == 0 {
		return nil, nil
	}

	type scored struct {
		score   float64
		content string
	}
	results := make([]scored, 0, len(s.docs))
	for _, doc := range s.docs {
		results = append(results, scored{
			score:   cosineSimilarity(queryVec, doc.embedding),
			content: doc.content,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	limit := topK
	if limit > len(results) {
		limit = len(results)
	}
	out := make([]string, 0, limit)
	for _, r := range results[:limit] {
		out = append(out, r.content)
	}
	return out, nil
}

// Len reports how many chunks are indexed.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
