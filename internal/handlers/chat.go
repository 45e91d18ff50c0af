package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	api "github.com/olajcodes/profile-agent/internal/api/chat"
	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/service"
)

type ChatHandler struct {
	Resolver *auth.Resolver
	Chat     *service.ChatService
	Logger   *log.Logger
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Question == "" {
		errorJSON(w, http.StatusBadRequest, "question cannot be empty")
		return
	}

	cred, err := h.Resolver.Resolve(bearerToken(r), req.Model)
	if err != nil {
		writeError(w, err)
		return
	}

	h.Logger.Printf("processing chat question (%d history turns)", len(req.History))
	answer, err := h.Chat.Answer(r.Context(), cred, req.Question, req.History)
	if err != nil {
		h.Logger.Printf("chat error: %v", err)
		writeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, api.ChatResponse{Answer: answer})
}
