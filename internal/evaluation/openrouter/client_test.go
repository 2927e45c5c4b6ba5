package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/quizbot/internal/evaluation"
)

func TestClient_Complete(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		want        string
		wantErr     bool
		wantBlocked bool
	}{
		{
			name: "returns first choice",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))

				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "openai/gpt-4o-mini", body["model"])

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]any{
					"id":    "gen-1",
					"model": "openai/gpt-4o-mini",
					"choices": []map[string]any{
						{"index": 0, "message": map[string]any{"role": "assistant", "content": "Cover the loss function."}, "finish_reason": "stop"},
					},
				})
			},
			want: "Cover the loss function.",
		},
		{
			name: "region block",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "Country, region, or territory not supported", "code": 403},
				})
			},
			wantErr:     true,
			wantBlocked: true,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadGateway)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "upstream failed", "code": 502},
				})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client, err := NewClient("or-key", "openai/gpt-4o-mini", server.URL)
			require.NoError(t, err)

			got, err := client.Complete(context.Background(), evaluation.Prompt{System: "s", User: "u", MaxTokens: 200, Temperature: 0.7})
			if tt.wantErr {
				require.Error(t, err)
				var blocked *evaluation.BlockedError
				assert.Equal(t, tt.wantBlocked, errors.As(err, &blocked))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("", "openai/gpt-4o-mini", "")
	assert.Error(t, err)
}
