package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
)

func newTestDrafter(t *testing.T, handler http.HandlerFunc) *Drafter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	drafter, err := NewDrafter(DrafterConfig{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		Model:             "test-model",
		RequestsPerSecond: 1000,
		Burst:             10,
	})
	require.NoError(t, err)
	return drafter
}

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestNewDrafter_MissingAPIKey(t *testing.T) {
	_, err := NewDrafter(DrafterConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewDrafter_Defaults(t *testing.T) {
	drafter, err := NewDrafter(DrafterConfig{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, drafter.ModelName())
	assert.Equal(t, DefaultBaseURL, drafter.baseURL)
	assert.Equal(t, DefaultTimeout, drafter.client.Timeout)
}

func TestDraft_RequestShape(t *testing.T) {
	var captured chatCompletionRequest
	var auth, contentType string

	drafter := newTestDrafter(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(completionBody(`{"chunk_id":"chunk-0001"}`)))
	})

	content, err := drafter.Draft(context.Background(), domain.Chunk{ID: "chunk-0001", Text: "Some text."})
	require.NoError(t, err)
	assert.Equal(t, `{"chunk_id":"chunk-0001"}`, content)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, float64(0), captured.Temperature)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "chunk-0001")
	assert.Contains(t, captured.Messages[1].Content, "Some text.")
}

func TestDraft_ReturnsRawContentVerbatim(t *testing.T) {
	drafter := newTestDrafter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(completionBody("not even json")))
	})

	content, err := drafter.Draft(context.Background(), domain.Chunk{ID: "chunk-0001"})
	require.NoError(t, err)
	assert.Equal(t, "not even json", content, "parsing is the caller's concern")
}

func TestDraft_EmptyContentBecomesEmptyObject(t *testing.T) {
	drafter := newTestDrafter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(completionBody("")))
	})

	content, err := drafter.Draft(context.Background(), domain.Chunk{ID: "chunk-0001"})
	require.NoError(t, err)
	assert.Equal(t, "{}", content)
}

func TestDraft_APIError(t *testing.T) {
	drafter := newTestDrafter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	})

	_, err := drafter.Draft(context.Background(), domain.Chunk{ID: "chunk-0001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_request_error")
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestDraft_UnexpectedStatus(t *testing.T) {
	drafter := newTestDrafter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{}`))
	})

	_, err := drafter.Draft(context.Background(), domain.Chunk{ID: "chunk-0001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDraft_NoChoices(t *testing.T) {
	drafter := newTestDrafter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := drafter.Draft(context.Background(), domain.Chunk{ID: "chunk-0001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestDraft_ContextCancelled(t *testing.T) {
	drafter := newTestDrafter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(completionBody("{}")))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := drafter.Draft(ctx, domain.Chunk{ID: "chunk-0001"})
	require.Error(t, err)
}
