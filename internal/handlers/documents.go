package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	api "github.com/olajcodes/profile-agent/internal/api/documents"
	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/render"
	"github.com/olajcodes/profile-agent/internal/service"
)

type DocumentHandler struct {
	Resolver    *auth.Resolver
	Docs        *service.DocumentService
	Logger      *log.Logger
	ProfileName string
}

type generateFunc func(ctx context.Context, cred auth.Credential, jobDescription string) (string, error)

func (h *DocumentHandler) HandleGenerateCV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("%s_CV_Tailored.pdf", sanitizeFilename(h.ProfileName))
	h.generate(w, r, h.Docs.GenerateCV, filename)
}

func (h *DocumentHandler) HandleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("%s_Cover_Letter.pdf", sanitizeFilename(h.ProfileName))
	h.generate(w, r, h.Docs.GenerateCoverLetter, filename)
}

func (h *DocumentHandler) generate(w http.ResponseWriter, r *http.Request, run generateFunc, filename string) {
	var req api.DocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		errorJSON(w, http.StatusBadRequest, "job_description cannot be empty")
		return
	}

	cred, err := h.Resolver.Resolve(bearerToken(r), req.Model)
	if err != nil {
		writeError(w, err)
		return
	}

	text, err := run(r.Context(), cred, req.JobDescription)
	if err != nil {
		h.Logger.Printf("document generation error: %v", err)
		writeError(w, err)
		return
	}

	pdfBytes, err := render.RenderPDF(text)
	if err != nil {
		h.Logger.Printf("render error: %v", err)
		errorJSON(w, http.StatusInternalServerError, "failed to render document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
