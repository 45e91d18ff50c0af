package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/config"
	"github.com/olajcodes/profile-agent/internal/handlers"
	"github.com/olajcodes/profile-agent/internal/index"
	"github.com/olajcodes/profile-agent/internal/ingest"
	"github.com/olajcodes/profile-agent/internal/llm"
	"github.com/olajcodes/profile-agent/internal/service"
)

func main() {
	logger := log.New(os.Stdout, "[profile-agent] ", log.LstdFlags)

	if err := godotenv.Load(); err == nil {
		logger.Println(".env file loaded")
	}

	cfgPath := flag.String("config", "config.yaml", "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatalf("failed to open index store: %v", err)
	}
	defer store.Close()

	client := llm.NewOpenAIClient(60 * time.Second)
	resolver := auth.NewResolver(cfg.AdminSecret, cfg.Providers)
	retriever := service.NewRetriever(store, client)

	chatSvc := service.NewChatService(retriever, client, logger,
		cfg.ProfileName, cfg.Chat.Temperature, cfg.Chat.TopK, cfg.Chat.AllowNoContext)
	docSvc := service.NewDocumentService(retriever, client, logger,
		cfg.ProfileName, cfg.Chat.Temperature, cfg.Chat.TopK)

	loader := ingest.NewLoader(cfg.Ingest, logger)
	splitter := ingest.NewSplitter(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	indexer := ingest.NewIndexer(splitter, client, store, logger)

	chatHandler := &handlers.ChatHandler{Resolver: resolver, Chat: chatSvc, Logger: logger}
	docHandler := &handlers.DocumentHandler{Resolver: resolver, Docs: docSvc, Logger: logger, ProfileName: cfg.ProfileName}
	reindexHandler := &handlers.ReindexHandler{
		Resolver:    resolver,
		AdminSecret: cfg.AdminSecret,
		Loader:      loader,
		Indexer:     indexer,
		Logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.HandleFunc("POST /chat", chatHandler.HandleChat)
	mux.HandleFunc("POST /generate-cv", docHandler.HandleGenerateCV)
	mux.HandleFunc("POST /generate-cover-letter", docHandler.HandleGenerateCoverLetter)
	mux.HandleFunc("POST /reindex", reindexHandler.HandleReindex)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      middlewareChain(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // document generation makes two model calls
		IdleTimeout:  60 * time.Second,
	}

	logger.Printf("profile-agent server is running on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

func openStore(cfg *config.Config) (index.Store, error) {
	if cfg.Index.Backend == "postgres" {
		return index.NewPostgresStore(cfg.Index.PostgresDSN)
	}
	return index.NewSQLiteStore(cfg.Index.Path), nil
}

// middlewareChain wraps the router with request logging and CORS.
func middlewareChain(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)

		logger.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
