package llm

import (
	"context"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/models"
)

// Client is the surface the orchestrators need from a language-model
// provider. The credential is resolved per request and never cached.
type Client interface {
	Complete(ctx context.Context, cred auth.Credential, messages []models.ChatMessage, temperature float64) (string, error)
	Embed(ctx context.Context, cred auth.Credential, inputs []string) ([][]float32, error)
}
