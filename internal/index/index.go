package index

import (
	"context"
	"errors"
	"math"

	"github.com/olajcodes/profile-agent/internal/models"
)

// ErrIndexNotFound means retrieval was attempted before any successful
// ingestion. Callers decide whether that is fatal or "answer without
// context" depending on deployment mode.
var ErrIndexNotFound = errors.New("vector index not found")

// Store is a persistent collection of embedded chunks. Rebuild replaces the
// whole index; there is no incremental upsert, so the stored vectors always
// belong to a single embedding model's vector space.
type Store interface {
	Rebuild(ctx context.Context, embedModel string, chunks []models.IndexedChunk) error
	Search(ctx context.Context, query []float32, k int) ([]models.SearchResult, error)
	Close() error
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector is empty or zero-length.
func CosineSimilarity(a, b []float32) float64 {
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
