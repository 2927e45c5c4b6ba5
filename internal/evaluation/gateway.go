package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/quizbot/internal/config"
)

var errEmptyCritique = errors.New("provider returned an empty critique")

// Gateway bounds a single provider call with a timeout and turns its result into an Outcome.
type Gateway struct {
	client      Client
	timeout     time.Duration
	maxRunes    int
	maxTokens   int
	temperature float64
	now         func() time.Time
}

// NewGateway returns a gateway that always reports OutcomeUnavailable when client is nil.
func NewGateway(client Client, cfg config.EvaluationConfig) *Gateway {
	return &Gateway{
		client:      client,
		timeout:     cfg.Timeout,
		maxRunes:    cfg.MaxCritiqueRunes,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		now:         time.Now,
	}
}

// Available reports whether a provider is configured.
func (g *Gateway) Available() bool {
	return g != nil && g.client != nil
}

// Evaluate makes exactly one provider call. When the timeout expires first, the call is abandoned
// and its late result discarded.
func (g *Gateway) Evaluate(ctx context.Context, req Request) Result {
	if !g.Available() {
		return Result{Outcome: OutcomeUnavailable}
	}

	start := g.now()
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	// Buffered so the goroutine can finish after we stop waiting.
	replies := make(chan reply, 1)
	prompt := BuildPrompt(req, g.maxTokens, g.temperature)
	go func() {
		text, err := g.client.Complete(callCtx, prompt)
		replies <- reply{text: text, err: err}
	}()

	var result Result
	select {
	case r := <-replies:
		result = g.toResult(r.text, r.err)
	case <-callCtx.Done():
		err := callCtx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			result = Result{Outcome: OutcomeTimedOut, Err: fmt.Errorf("evaluation exceeded %s: %w", g.timeout, err)}
		} else {
			result = Result{Outcome: OutcomeFailed, Err: err}
		}
	}
	result.Elapsed = g.now().Sub(start)

	if result.Outcome != OutcomeCritique {
		slog.Default().Warn("answer evaluation did not produce a critique",
			"outcome", result.Outcome,
			"elapsed", result.Elapsed,
			"error", result.Err,
		)
	}
	return result
}

func (g *Gateway) toResult(text string, err error) Result {
	if err != nil {
		return Result{Outcome: Classify(err), Err: err}
	}
	critique := truncateRunes(strings.TrimSpace(text), g.maxRunes)
	if critique == "" {
		return Result{Outcome: OutcomeFailed, Err: errEmptyCritique}
	}
	return Result{Outcome: OutcomeCritique, Critique: critique}
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}
