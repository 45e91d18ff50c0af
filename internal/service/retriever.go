package service

import (
	"context"
	"fmt"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/index"
	"github.com/olajcodes/profile-agent/internal/llm"
	"github.com/olajcodes/profile-agent/internal/models"
)

// Retriever embeds a query with the request credential and runs a top-k
// similarity search over the persisted index. The embedding model must be
// the same family the index was built with; mixing models silently degrades
// results rather than erroring.
type Retriever struct {
	store  index.Store
	client llm.Client
}

func NewRetriever(store index.Store, client llm.Client) *Retriever {
	return &Retriever{store: store, client: client}
}

func (r *Retriever) Retrieve(ctx context.Context, cred auth.Credential, query string, k int) ([]models.SearchResult, error) {
	vectors, err := r.client.Embed(ctx, cred, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("provider returned no query embedding")
	}
	return r.store.Search(ctx, vectors[0], k)
}
