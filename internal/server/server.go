// Package server exposes the quiz over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/quizbot/internal/config"
	"github.com/at-ishikawa/quizbot/internal/question"
	"github.com/at-ishikawa/quizbot/internal/quiz"
)

//go:generate mockgen -source=server.go -destination=../mocks/server/mock_server.go -package=mock_server

// QuizService is the set of user actions the API dispatches to.
type QuizService interface {
	RequestQuestion(ctx context.Context, sessionID string, user question.User) (quiz.Payload, error)
	ShowQuestion(ctx context.Context, sessionID string, questionID int64) (quiz.Payload, error)
	RevealAnswer(ctx context.Context, sessionID string, questionID int64) (quiz.Payload, error)
	Resolve(ctx context.Context, sessionID string, user question.User, questionID int64, decision quiz.Decision) (quiz.Payload, error)
	SubmitFreeText(ctx context.Context, sessionID string, user question.User, text string) (quiz.Payload, error)
	Progress(ctx context.Context, user question.User) (quiz.Payload, error)
}

// Sweeper evicts abandoned session entries.
type Sweeper interface {
	Sweep(ttl time.Duration) int
}

const sweepInterval = time.Minute

type Server struct {
	service    QuizService
	sweeper    Sweeper
	cfg        config.ServerConfig
	newSession func() string
	httpServer *http.Server
}

func NewServer(service QuizService, sweeper Sweeper, cfg config.ServerConfig) *Server {
	s := &Server{
		service:    service,
		sweeper:    sweeper,
		cfg:        cfg,
		newSession: newSessionID,
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes wrapped in the middleware pipeline.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	s.RegisterRoutes(router)
	return pipeline(router,
		recoverer,
		requestLogger,
		corsHandler(s.cfg.CORS.AllowedOrigins),
		jsonContentType,
	)
}

func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	router.HandleFunc("/sessions", s.createSession).Methods(http.MethodPost)

	sessions := router.PathPrefix("/sessions/{session}").Subrouter()
	sessions.HandleFunc("/question", s.requestQuestion).Methods(http.MethodPost)
	sessions.HandleFunc("/questions/{id}", withQuestionID(s.showQuestion)).Methods(http.MethodPost)
	sessions.HandleFunc("/questions/{id}/answer", withQuestionID(s.revealAnswer)).Methods(http.MethodPost)
	sessions.HandleFunc("/questions/{id}/resolve", withQuestionID(s.resolve)).Methods(http.MethodPost)
	sessions.HandleFunc("/text", s.submitText).Methods(http.MethodPost)
	sessions.HandleFunc("/callback", s.callback).Methods(http.MethodPost)

	router.HandleFunc("/users/{user}/progress", s.progress).Methods(http.MethodGet)
}

// ListenAndServe serves until Shutdown is called, sweeping idle sessions in the background.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.cfg.SessionTTL > 0 {
		go RunSweeper(ctx, s.sweeper, s.cfg.SessionTTL, sweepInterval)
	}

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("net.Listen > %w", err)
	}
	slog.Default().Info("starting server", "addr", listener.Addr().String())
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.Serve > %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Default().Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}

// RunSweeper evicts session entries idle for longer than ttl every interval until ctx is done.
func RunSweeper(ctx context.Context, sweeper Sweeper, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sweeper.Sweep(ttl); n > 0 {
				slog.Default().Debug("swept idle sessions", "count", n, "ttl", ttl)
			}
		}
	}
}
