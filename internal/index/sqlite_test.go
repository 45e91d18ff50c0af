package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olajcodes/profile-agent/internal/models"
)

func testChunk(id, source, content string, embedding []float32) models.IndexedChunk {
	return models.IndexedChunk{
		Chunk:     models.Chunk{ID: id, Source: source, Content: content},
		Embedding: embedding,
	}
}

func TestSearchWithoutIndex(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "index.db"))
	_, err := store.Search(context.Background(), []float32{1, 0}, 4)
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func TestRebuildAndSearchOrdering(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "index.db"))
	ctx := context.Background()

	err := store.Rebuild(ctx, "text-embedding-3-small", []models.IndexedChunk{
		testChunk("a", "GitHub: a.md", "about vectors", []float32{1, 0, 0}),
		testChunk("b", "GitHub: b.md", "about text", []float32{0, 1, 0}),
		testChunk("c", "Local File: c.txt", "about both", []float32{0.7, 0.7, 0}),
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "a", results[0].Chunk.ID)
	assert.Equal(t, "c", results[1].Chunk.ID)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
	assert.Equal(t, "GitHub: a.md", results[0].Chunk.Source)
}

func TestSearchReturnsAtMostK(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "index.db"))
	ctx := context.Background()

	require.NoError(t, store.Rebuild(ctx, "m", []models.IndexedChunk{
		testChunk("a", "s", "one", []float32{1, 0}),
		testChunk("b", "s", "two", []float32{0, 1}),
	}))

	results, err := store.Search(ctx, []float32{1, 1}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestRebuildReplacesPreviousIndex(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "index.db"))
	ctx := context.Background()

	require.NoError(t, store.Rebuild(ctx, "m", []models.IndexedChunk{
		testChunk("old", "GitHub: old.md", "old content", []float32{1, 0}),
	}))
	require.NoError(t, store.Rebuild(ctx, "m", []models.IndexedChunk{
		testChunk("new", "GitHub: new.md", "new content", []float32{0, 1}),
	}))

	results, err := store.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, "old", r.Chunk.ID)
	}
	require.Len(t, results, 1)
	assert.Equal(t, "new", results[0].Chunk.ID)
}

func TestRebuildLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")
	store := NewSQLiteStore(path)

	require.NoError(t, store.Rebuild(context.Background(), "m", []models.IndexedChunk{
		testChunk("a", "s", "content", []float32{1}),
	}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, CosineSimilarity(nil, nil))
	assert.Zero(t, CosineSimilarity([]float32{1}, []float32{1, 2}))
}
