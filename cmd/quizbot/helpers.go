package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/quizbot/internal/config"
	"github.com/at-ishikawa/quizbot/internal/database"
	"github.com/at-ishikawa/quizbot/internal/evaluation"
	"github.com/at-ishikawa/quizbot/internal/evaluation/anthropic"
	"github.com/at-ishikawa/quizbot/internal/evaluation/gemini"
	"github.com/at-ishikawa/quizbot/internal/evaluation/openai"
	"github.com/at-ishikawa/quizbot/internal/evaluation/openrouter"
	"github.com/at-ishikawa/quizbot/internal/question"
	"github.com/at-ishikawa/quizbot/internal/quiz"
	"github.com/at-ishikawa/quizbot/internal/session"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newEvaluationClient returns a nil client when no credential is configured, which makes every
// evaluation report OutcomeUnavailable.
func newEvaluationClient(ctx context.Context, cfg config.EvaluationConfig) (evaluation.Client, func() error, error) {
	noop := func() error { return nil }
	if !cfg.Enabled() {
		slog.Default().Info("answer evaluation disabled, no API key configured")
		return nil, noop, nil
	}

	switch cfg.Provider {
	case "openai":
		client := openai.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		return client, client.Close, nil
	case "anthropic":
		client, err := anthropic.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("anthropic.NewClient > %w", err)
		}
		return client, noop, nil
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("gemini.NewClient > %w", err)
		}
		return client, noop, nil
	case "openrouter":
		client, err := openrouter.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("openrouter.NewClient > %w", err)
		}
		return client, noop, nil
	}
	return nil, noop, fmt.Errorf("unsupported evaluation provider %q", cfg.Provider)
}

type app struct {
	db       *sqlx.DB
	service  *quiz.Service
	tracker  *session.Tracker
	closeFns []func() error
}

func (a *app) Close() error {
	var firstErr error
	for i := len(a.closeFns) - 1; i >= 0; i-- {
		if err := a.closeFns[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// newApp wires the database, sampler, session tracker, and evaluation gateway into a quiz service.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a := &app{db: db, closeFns: []func() error{db.Close}}

	client, closeClient, err := newEvaluationClient(ctx, cfg.Evaluation)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closeFns = append(a.closeFns, closeClient)

	repo := question.NewDBRepository(db)
	sampler := question.NewSampler(repo, question.WithMaxAttempts(cfg.Sampler.MaxAttempts))
	a.tracker = session.NewTracker()
	a.service = quiz.NewService(repo, sampler, a.tracker, evaluation.NewGateway(client, cfg.Evaluation))
	return a, nil
}
