package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		model     string
		wantModel string
		wantErr   bool
	}{
		{name: "friendly model name", apiKey: "key", model: "gemini-flash", wantModel: "gemini-2.0-flash"},
		{name: "direct model id", apiKey: "key", model: "gemini-1.5-pro", wantModel: "gemini-1.5-pro"},
		{name: "missing key", model: "gemini-flash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewClient(context.Background(), tt.apiKey, tt.model, "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, got.Model())
		})
	}
}
