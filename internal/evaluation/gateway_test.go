package evaluation_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/quizbot/internal/config"
	"github.com/at-ishikawa/quizbot/internal/evaluation"
	mock_evaluation "github.com/at-ishikawa/quizbot/internal/mocks/evaluation"
)

func testConfig() config.EvaluationConfig {
	return config.EvaluationConfig{
		Provider:         "openai",
		APIKey:           "sk-test",
		Model:            "gpt-3.5-turbo",
		Timeout:          time.Second,
		MaxTokens:        200,
		Temperature:      0.7,
		MaxCritiqueRunes: 20,
	}
}

type clientFunc func(ctx context.Context, prompt evaluation.Prompt) (string, error)

func (f clientFunc) Complete(ctx context.Context, prompt evaluation.Prompt) (string, error) {
	return f(ctx, prompt)
}

func TestGateway_Evaluate(t *testing.T) {
	req := evaluation.Request{
		Question:        "What is overfitting?",
		UserAnswer:      "When a model memorizes training data",
		ReferenceAnswer: "Low training error, high test error",
	}

	tests := []struct {
		name         string
		setup        func(client *mock_evaluation.MockClient)
		wantOutcome  evaluation.Outcome
		wantCritique string
	}{
		{
			name: "critique is trimmed",
			setup: func(client *mock_evaluation.MockClient) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, prompt evaluation.Prompt) (string, error) {
						assert.Equal(t, 200, prompt.MaxTokens)
						assert.Equal(t, 0.7, prompt.Temperature)
						assert.Contains(t, prompt.User, req.ReferenceAnswer)
						return "  Mention variance.\n", nil
					})
			},
			wantOutcome:  evaluation.OutcomeCritique,
			wantCritique: "Mention variance.",
		},
		{
			name: "critique is capped",
			setup: func(client *mock_evaluation.MockClient) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).
					Return(strings.Repeat("ありがとう", 10), nil)
			},
			wantOutcome:  evaluation.OutcomeCritique,
			wantCritique: strings.Repeat("ありがとう", 4),
		},
		{
			name: "empty critique is a failure",
			setup: func(client *mock_evaluation.MockClient) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("   ", nil)
			},
			wantOutcome: evaluation.OutcomeFailed,
		},
		{
			name: "region block",
			setup: func(client *mock_evaluation.MockClient) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).
					Return("", errors.New(`response error 403: {"error":{"code":"unsupported_country_region_territory"}}`))
			},
			wantOutcome: evaluation.OutcomeBlocked,
		},
		{
			name: "generic provider error",
			setup: func(client *mock_evaluation.MockClient) {
				client.EXPECT().Complete(gomock.Any(), gomock.Any()).
					Return("", errors.New("response error 500: internal"))
			},
			wantOutcome: evaluation.OutcomeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_evaluation.NewMockClient(ctrl)
			tt.setup(client)

			got := evaluation.NewGateway(client, testConfig()).Evaluate(context.Background(), req)
			assert.Equal(t, tt.wantOutcome, got.Outcome)
			assert.Equal(t, tt.wantCritique, got.Critique)
			if tt.wantOutcome != evaluation.OutcomeCritique {
				assert.Error(t, got.Err)
			}
		})
	}
}

func TestGateway_Evaluate_Unavailable(t *testing.T) {
	gateway := evaluation.NewGateway(nil, testConfig())
	assert.False(t, gateway.Available())

	got := gateway.Evaluate(context.Background(), evaluation.Request{Question: "q", UserAnswer: "a"})
	assert.Equal(t, evaluation.Result{Outcome: evaluation.OutcomeUnavailable}, got)
}

func TestGateway_Evaluate_TimeoutDiscardsLateResult(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})
	calls := 0
	client := clientFunc(func(_ context.Context, _ evaluation.Prompt) (string, error) {
		calls++
		defer close(finished)
		<-release
		return "too late", nil
	})

	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	got := evaluation.NewGateway(client, cfg).Evaluate(context.Background(), evaluation.Request{Question: "q", UserAnswer: "a"})

	assert.Equal(t, evaluation.OutcomeTimedOut, got.Outcome)
	assert.Empty(t, got.Critique)
	assert.ErrorIs(t, got.Err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, got.Elapsed, cfg.Timeout)

	close(release)
	<-finished
	assert.Equal(t, 1, calls)
}

func TestGateway_Evaluate_ProviderHonorsDeadline(t *testing.T) {
	client := clientFunc(func(ctx context.Context, _ evaluation.Prompt) (string, error) {
		<-ctx.Done()
		return "", fmt.Errorf("httpClient.Post > %w", ctx.Err())
	})

	cfg := testConfig()
	cfg.Timeout = 10 * time.Millisecond
	got := evaluation.NewGateway(client, cfg).Evaluate(context.Background(), evaluation.Request{Question: "q", UserAnswer: "a"})
	assert.Equal(t, evaluation.OutcomeTimedOut, got.Outcome)
}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name        string
		req         evaluation.Request
		wantContain []string
		wantMissing []string
	}{
		{
			name: "with reference answer",
			req:  evaluation.Request{Question: "What is AUC?", UserAnswer: "Area under ROC", ReferenceAnswer: "Ranking quality"},
			wantContain: []string{
				"Question: What is AUC?",
				"Reference answer (for context): Ranking quality",
				"Candidate's answer: Area under ROC",
			},
		},
		{
			name:        "without reference answer",
			req:         evaluation.Request{Question: "What is AUC?", UserAnswer: "Area under ROC"},
			wantContain: []string{"Question: What is AUC?", "Candidate's answer: Area under ROC"},
			wantMissing: []string{"Reference answer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluation.BuildPrompt(tt.req, 200, 0.7)
			assert.Contains(t, got.System, "2-3 sentences")
			for _, want := range tt.wantContain {
				assert.Contains(t, got.User, want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, got.User, missing)
			}
			require.Equal(t, 200, got.MaxTokens)
		})
	}
}
