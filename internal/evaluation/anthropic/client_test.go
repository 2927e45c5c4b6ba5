package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quizbot/internal/evaluation"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", "claude-haiku", server.URL)
	require.NoError(t, err)
	return client
}

func TestClient_Complete(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v1/messages", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
		assert.EqualValues(t, 200, body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "Add an example of regularization."},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 12},
		})
	})

	got, err := client.Complete(context.Background(), evaluation.Prompt{
		System:      "You are an interviewer.",
		User:        "Question: What is L2?",
		MaxTokens:   200,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Add an example of regularization.", got)
	assert.Equal(t, 1, calls)
}

func TestClient_Complete_ServerErrorIsNotRetried(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": "Internal error"},
		})
	})

	_, err := client.Complete(context.Background(), evaluation.Prompt{User: "q", MaxTokens: 10})
	require.Error(t, err)
	assert.Equal(t, evaluation.OutcomeFailed, evaluation.Classify(err))
	assert.Equal(t, 1, calls)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("", "claude-haiku", "")
	assert.Error(t, err)
}
