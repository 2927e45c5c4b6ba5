// Package evaluation asks a text-completion provider to critique a free-text answer.
package evaluation

import (
	"context"
	"time"
)

//go:generate mockgen -source=evaluation.go -destination=../mocks/evaluation/mock_client.go -package=mock_evaluation

// Client sends one prompt to a completion provider and returns its text. Implementations must not retry.
type Client interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Prompt is a provider-neutral chat completion request.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Request is the answer to critique. ReferenceAnswer may be empty.
type Request struct {
	Question        string
	UserAnswer      string
	ReferenceAnswer string
}

// Outcome is the kind of result an evaluation produced.
type Outcome string

const (
	OutcomeCritique    Outcome = "critique"
	OutcomeBlocked     Outcome = "blocked"
	OutcomeTimedOut    Outcome = "timed_out"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeFailed      Outcome = "failed"
)

// Result is returned by Gateway.Evaluate. Critique is set only for OutcomeCritique.
type Result struct {
	Outcome  Outcome
	Critique string
	Elapsed  time.Duration
	// Err is the provider error behind a non-critique outcome, for logging only.
	Err error
}
