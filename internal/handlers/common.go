package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/index"
	"github.com/olajcodes/profile-agent/internal/llm"
	"github.com/olajcodes/profile-agent/internal/service"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorJSON(w http.ResponseWriter, status int, detail string) {
	jsonResponse(w, status, errorResponse{Detail: detail})
}

// writeError maps the error taxonomy onto HTTP statuses: credential
// problems 401, gate rejection 400, missing index 404, upstream provider
// failures 502, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidKeyFormat):
		errorJSON(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrServerMisconfigured):
		errorJSON(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, service.ErrIrrelevantRequest):
		errorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, index.ErrIndexNotFound):
		errorJSON(w, http.StatusNotFound, "index not found; run ingestion first")
	case errors.Is(err, llm.ErrRateLimited):
		errorJSON(w, http.StatusBadGateway, err.Error())
	default:
		errorJSON(w, http.StatusInternalServerError, err.Error())
	}
}

// bearerToken pulls the credential out of the Authorization header. An
// absent header resolves to the empty token, which the resolver rejects.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
