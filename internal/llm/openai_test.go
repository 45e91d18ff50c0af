package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/models"
)

func credFor(server *httptest.Server) auth.Credential {
	return auth.Credential{
		Provider:   "test",
		BaseURL:    server.URL,
		APIKey:     "sk-test123",
		ChatModel:  "gpt-4o-mini",
		EmbedModel: "text-embedding-3-small",
	}
}

func TestCompleteSendsCredentialAndModel(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody chatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message models.ChatMessage `json:"message"`
			}{{Message: models.ChatMessage{Role: models.RoleAssistant, Content: "hello"}}},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(5 * time.Second)
	out, err := client.Complete(context.Background(), credFor(server), []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
	}, 0.3)
	require.NoError(t, err)

	assert.Equal(t, "hello", out)
	assert.Equal(t, "Bearer sk-test123", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	assert.InDelta(t, 0.3, gotBody.Temperature, 1e-9)
}

func TestCompleteRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAIClient(5 * time.Second)
	_, err := client.Complete(context.Background(), credFor(server), []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
	}, 0)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCompleteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewOpenAIClient(5 * time.Second)
	_, err := client.Complete(context.Background(), credFor(server), []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
	}, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "401")
}

func TestEmbedPreservesInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		// Return embeddings out of order; the client must re-sort by index.
		w.Write([]byte(`{"data":[
			{"index":1,"embedding":[2.0]},
			{"index":0,"embedding":[1.0]}
		]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(5 * time.Second)
	vectors, err := client.Embed(context.Background(), credFor(server), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{1.0}, vectors[0])
	assert.Equal(t, []float32{2.0}, vectors[1])
}

func TestEmbedCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"index":0,"embedding":[1.0]}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(5 * time.Second)
	_, err := client.Embed(context.Background(), credFor(server), []string{"a", "b"})
	assert.Error(t, err)
}

func TestEmbedNoInputs(t *testing.T) {
	client := NewOpenAIClient(5 * time.Second)
	vectors, err := client.Embed(context.Background(), auth.Credential{}, nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}
