package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/index"
	"github.com/olajcodes/profile-agent/internal/llm"
	"github.com/olajcodes/profile-agent/internal/service"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{auth.ErrUnauthenticated, http.StatusUnauthorized},
		{auth.ErrInvalidKeyFormat, http.StatusUnauthorized},
		{auth.ErrServerMisconfigured, http.StatusInternalServerError},
		{service.ErrIrrelevantRequest, http.StatusBadRequest},
		{index.ErrIndexNotFound, http.StatusNotFound},
		{fmt.Errorf("embed query: %w", index.ErrIndexNotFound), http.StatusNotFound},
		{fmt.Errorf("openai: %w", llm.ErrRateLimited), http.StatusBadGateway},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, tc.err)
		assert.Equalf(t, tc.status, rec.Code, "error %v", tc.err)

		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Detail)
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/chat", nil)
	assert.Empty(t, bearerToken(r))

	r.Header.Set("Authorization", "Bearer sk-test123")
	assert.Equal(t, "sk-test123", bearerToken(r))

	// A bare token without the Bearer scheme still comes through.
	r.Header.Set("Authorization", "sk-raw")
	assert.Equal(t, "sk-raw", bearerToken(r))
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "active", body.Status)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Olajide", sanitizeFilename("Olajide"))
	assert.Equal(t, "Jane_Doe", sanitizeFilename("Jane Doe"))
	assert.Equal(t, "a_b_c", sanitizeFilename("a/b:c"))
}
