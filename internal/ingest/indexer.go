package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/index"
	"github.com/olajcodes/profile-agent/internal/llm"
	"github.com/olajcodes/profile-agent/internal/models"
)

const embedBatchSize = 32

// Indexer embeds chunks and publishes them to the store as a full reindex.
// An embedding failure aborts the whole rebuild before anything is
// published, so a partial index is never served.
type Indexer struct {
	splitter *Splitter
	client   llm.Client
	store    index.Store
	logger   *log.Logger
}

func NewIndexer(splitter *Splitter, client llm.Client, store index.Store, logger *log.Logger) *Indexer {
	return &Indexer{splitter: splitter, client: client, store: store, logger: logger}
}

// Rebuild splits, embeds and stores the given documents, replacing any
// existing index. Zero resulting chunks is a logged no-op: the existing
// index stays as it is and no empty index is created.
func (ix *Indexer) Rebuild(ctx context.Context, cred auth.Credential, documents []models.Document) error {
	chunks := ix.splitter.Split(documents)
	if len(chunks) == 0 {
		ix.logger.Println("no chunks produced; skipping index rebuild")
		return nil
	}
	ix.logger.Printf("embedding %d chunks with %s", len(chunks), cred.EmbedModel)

	indexed := make([]models.IndexedChunk, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		inputs := make([]string, len(batch))
		for i, c := range batch {
			inputs[i] = c.Content
		}
		vectors, err := ix.client.Embed(ctx, cred, inputs)
		if err != nil {
			return fmt.Errorf("embed chunks %d-%d: %w", start, end, err)
		}
		for i, c := range batch {
			indexed = append(indexed, models.IndexedChunk{Chunk: c, Embedding: vectors[i]})
		}
	}

	if err := ix.store.Rebuild(ctx, cred.EmbedModel, indexed); err != nil {
		return fmt.Errorf("publish index: %w", err)
	}
	ix.logger.Printf("index rebuilt with %d chunks", len(indexed))
	return nil
}
