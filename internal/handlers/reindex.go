package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/ingest"
)

// ReindexHandler triggers an on-demand full rebuild of the index. Admin
// only: the request token must be the shared admin secret, which also
// selects the server-side provider credential for embedding.
type ReindexHandler struct {
	Resolver    *auth.Resolver
	AdminSecret string
	Loader      *ingest.Loader
	Indexer     *ingest.Indexer
	Logger      *log.Logger

	mu sync.Mutex
}

func (h *ReindexHandler) HandleReindex(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, auth.ErrUnauthenticated)
		return
	}
	if h.AdminSecret == "" || token != h.AdminSecret {
		errorJSON(w, http.StatusUnauthorized, "reindex requires the admin credential")
		return
	}

	cred, err := h.Resolver.Resolve(token, "")
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.mu.TryLock() {
		errorJSON(w, http.StatusConflict, "a rebuild is already running")
		return
	}

	// The rebuild outlives the request; the swap keeps readers safe while
	// it runs.
	go func() {
		defer h.mu.Unlock()
		ctx := context.Background()
		documents := h.Loader.LoadAll(ctx)
		if err := h.Indexer.Rebuild(ctx, cred, documents); err != nil {
			h.Logger.Printf("reindex failed: %v", err)
			return
		}
		h.Logger.Println("reindex complete")
	}()

	jsonResponse(w, http.StatusAccepted, map[string]string{"status": "rebuild started"})
}
