// Offline ingestion job: pulls the three document origins, chunks and
// embeds them, and replaces the vector index. Run it before serving, or
// whenever the sources change.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/config"
	"github.com/olajcodes/profile-agent/internal/index"
	"github.com/olajcodes/profile-agent/internal/ingest"
	"github.com/olajcodes/profile-agent/internal/llm"
)

func main() {
	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags)

	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to YAML config (optional)")
	timeout := flag.Duration("timeout", 15*time.Minute, "Overall ingestion timeout")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	provider := cfg.FirstConfiguredProvider()
	if provider == nil {
		logger.Fatal("no provider API key configured; set one of the provider key environment variables")
	}

	var store index.Store
	if cfg.Index.Backend == "postgres" {
		store, err = index.NewPostgresStore(cfg.Index.PostgresDSN)
		if err != nil {
			logger.Fatalf("failed to open index store: %v", err)
		}
	} else {
		store = index.NewSQLiteStore(cfg.Index.Path)
	}
	defer store.Close()

	client := llm.NewOpenAIClient(60 * time.Second)
	resolver := auth.NewResolver(cfg.AdminSecret, cfg.Providers)

	// The admin secret resolves to the server-side credential; when no
	// secret is set the first configured provider is used directly.
	cred, err := resolver.Resolve(cfg.AdminSecret, "")
	if err != nil {
		cred = auth.Credential{
			Provider:   provider.Name,
			BaseURL:    provider.BaseURL,
			APIKey:     provider.APIKey,
			ChatModel:  provider.ChatModel,
			EmbedModel: provider.EmbedModel,
		}
	}
	if cred.EmbedModel == "" {
		cred.EmbedModel = "text-embedding-3-small"
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	loader := ingest.NewLoader(cfg.Ingest, logger)
	splitter := ingest.NewSplitter(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	indexer := ingest.NewIndexer(splitter, client, store, logger)

	documents := loader.LoadAll(ctx)
	logger.Printf("loaded %d documents in total", len(documents))

	if err := indexer.Rebuild(ctx, cred, documents); err != nil {
		logger.Fatalf("ingestion failed: %v", err)
	}
	logger.Println("success, index is ready")
}
