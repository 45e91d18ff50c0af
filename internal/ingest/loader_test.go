package ingest

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olajcodes/profile-agent/internal/config"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestLoadLocalFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "article.md"), []byte("an article"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("some notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89}, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	loader := NewLoader(config.IngestConfig{DataDir: dir}, quietLogger())
	docs, err := loader.loadLocalFolder()
	require.NoError(t, err)
	require.Len(t, docs, 2)

	sources := []string{docs[0].Source, docs[1].Source}
	assert.Contains(t, sources, "Local File: article.md")
	assert.Contains(t, sources, "Local File: notes.txt")
	for _, d := range docs {
		assert.NotEmpty(t, d.Content)
	}
}

func TestLoadAllToleratesFailingOrigins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "only.md"), []byte("still loaded"), 0o644))

	// Repository URL unset, résumé missing: both origins fail and are
	// skipped, the local folder still loads.
	loader := NewLoader(config.IngestConfig{
		RepoURL:    "",
		ResumePath: filepath.Join(dir, "does-not-exist.pdf"),
		DataDir:    dir,
	}, quietLogger())

	docs := loader.LoadAll(context.Background())
	require.Len(t, docs, 1)
	assert.Equal(t, "Local File: only.md", docs[0].Source)
}

func TestLoadAllAllOriginsFailing(t *testing.T) {
	loader := NewLoader(config.IngestConfig{
		RepoURL:    "",
		ResumePath: "",
		DataDir:    filepath.Join(t.TempDir(), "missing"),
	}, quietLogger())

	assert.Empty(t, loader.LoadAll(context.Background()))
}
