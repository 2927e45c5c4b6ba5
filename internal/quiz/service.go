// Package quiz runs the present, reveal, and resolve cycle over the question bank for chat sessions.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/quizbot/internal/evaluation"
	"github.com/at-ishikawa/quizbot/internal/question"
	"github.com/at-ishikawa/quizbot/internal/session"
)

//go:generate mockgen -source=service.go -destination=../mocks/quiz/mock_service.go -package=mock_quiz

// Sampler picks the next unlearned question for a user.
type Sampler interface {
	Sample(ctx context.Context, userID int64) (question.Sample, error)
}

// Evaluator critiques a free-text answer.
type Evaluator interface {
	Evaluate(ctx context.Context, req evaluation.Request) evaluation.Result
}

// Service handles user actions. Actions of one session run one at a time.
type Service struct {
	repo      question.Repository
	sampler   Sampler
	tracker   *session.Tracker
	evaluator Evaluator
}

func NewService(repo question.Repository, sampler Sampler, tracker *session.Tracker, evaluator Evaluator) *Service {
	return &Service{
		repo:      repo,
		sampler:   sampler,
		tracker:   tracker,
		evaluator: evaluator,
	}
}

var questionActions = []Action{ActionShowAnswer, ActionAnswerText, ActionNextQuestion}

// RequestQuestion presents a random unlearned question, abandoning whatever the session had open.
func (s *Service) RequestQuestion(ctx context.Context, sessionID string, user question.User) (Payload, error) {
	unlock := s.tracker.Lock(sessionID)
	defer unlock()

	s.tracker.Discard(sessionID)

	sample, err := s.sampler.Sample(ctx, user.ID)
	if errors.Is(err, question.ErrSamplingContention) {
		return Payload{Status: StatusBusy, Actions: []Action{ActionNextQuestion}}, nil
	}
	if err != nil {
		slog.Default().Error("failed to sample question",
			"user_id", user.ID,
			"session_id", sessionID,
			"error", err,
		)
		return Payload{}, fmt.Errorf("sampler.Sample > %w", err)
	}

	switch sample.Outcome {
	case question.OutcomeEmpty:
		return Payload{Status: StatusEmpty}, nil
	case question.OutcomeExhausted:
		return Payload{Status: StatusExhausted}, nil
	}

	s.tracker.Open(sessionID, sample.Question.ID)
	slog.Default().Info("question presented",
		"user_id", user.ID,
		"session_id", sessionID,
		"question_id", sample.Question.ID,
		"unlearned", sample.Unlearned,
	)
	return Payload{
		Status:   StatusQuestion,
		Question: newQuestionView(sample.Question),
		Actions:  questionActions,
	}, nil
}

// ShowQuestion presents a specific question, abandoning whatever the session had open.
func (s *Service) ShowQuestion(ctx context.Context, sessionID string, questionID int64) (Payload, error) {
	unlock := s.tracker.Lock(sessionID)
	defer unlock()

	q, err := s.repo.FindByID(ctx, questionID)
	if err != nil {
		return Payload{}, fmt.Errorf("repo.FindByID > %w", err)
	}
	if q == nil {
		return notFound(), nil
	}

	s.tracker.Open(sessionID, q.ID)
	return Payload{
		Status:   StatusQuestion,
		Question: newQuestionView(q),
		Actions:  questionActions,
	}, nil
}

// RevealAnswer shows the answer of the session's open question.
// A question id that is not open yields StatusNotFound and never another question's answer.
func (s *Service) RevealAnswer(ctx context.Context, sessionID string, questionID int64) (Payload, error) {
	unlock := s.tracker.Lock(sessionID)
	defer unlock()

	if err := s.tracker.Reveal(sessionID, questionID); err != nil {
		slog.Default().Info("reveal of a question that is not open",
			"session_id", sessionID,
			"question_id", questionID,
		)
		return notFound(), nil
	}

	q, err := s.repo.FindByID(ctx, questionID)
	if err != nil {
		return Payload{}, fmt.Errorf("repo.FindByID > %w", err)
	}
	if q == nil {
		s.tracker.Discard(sessionID)
		return notFound(), nil
	}

	return Payload{
		Status:   StatusAnswer,
		Question: newQuestionView(q),
		Answer:   q.Answer,
		Actions:  []Action{ActionLearned, ActionRepeat, ActionNextQuestion},
	}, nil
}

// Resolve closes a revealed question as learned or to be repeated.
func (s *Service) Resolve(ctx context.Context, sessionID string, user question.User, questionID int64, decision Decision) (Payload, error) {
	if !decision.Valid() {
		return Payload{Status: StatusInvalidRequest}, nil
	}

	unlock := s.tracker.Lock(sessionID)
	defer unlock()

	entry, ok := s.tracker.Current(sessionID)
	if !ok || entry.QuestionID != questionID {
		return notFound(), nil
	}
	if entry.State != session.StateRevealed {
		return Payload{Status: StatusNotRevealed, Actions: []Action{ActionShowAnswer}}, nil
	}

	payload := Payload{Actions: []Action{ActionNextQuestion}}
	switch decision {
	case DecisionLearned:
		inserted, err := s.repo.MarkLearned(ctx, question.LearnedMark{
			UserID:     user.ID,
			Username:   user.Username,
			QuestionID: questionID,
		})
		if err != nil {
			return Payload{}, fmt.Errorf("repo.MarkLearned > %w", err)
		}
		payload.Status = StatusLearned
		payload.Inserted = inserted
	case DecisionRepeat:
		payload.Status = StatusRepeat
	}

	if err := s.repo.LogAction(ctx, question.ActionLog{
		Username:   user.DisplayName(),
		QuestionID: questionID,
	}); err != nil {
		return Payload{}, fmt.Errorf("repo.LogAction > %w", err)
	}

	if err := s.tracker.Resolve(sessionID, questionID); err != nil {
		return Payload{}, fmt.Errorf("tracker.Resolve > %w", err)
	}
	slog.Default().Info("question resolved",
		"user_id", user.ID,
		"session_id", sessionID,
		"question_id", questionID,
		"decision", decision,
		"inserted", payload.Inserted,
	)
	return payload, nil
}

// SubmitFreeText closes the open question with the user's own answer and asks the evaluator for a critique.
// The answer is logged before evaluation, so it is recorded whatever the evaluation outcome.
func (s *Service) SubmitFreeText(ctx context.Context, sessionID string, user question.User, text string) (Payload, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Payload{Status: StatusInvalidRequest}, nil
	}

	unlock := s.tracker.Lock(sessionID)
	defer unlock()

	entry, ok := s.tracker.Current(sessionID)
	if !ok {
		return Payload{Status: StatusNoOpenQuestion, Actions: []Action{ActionNextQuestion}}, nil
	}

	// The question stays open until the answer is recorded.
	q, err := s.repo.FindByID(ctx, entry.QuestionID)
	if err != nil {
		return Payload{}, fmt.Errorf("repo.FindByID > %w", err)
	}
	if q == nil {
		s.tracker.Discard(sessionID)
		return notFound(), nil
	}

	if err := s.repo.LogAction(ctx, question.ActionLog{
		Username:   user.DisplayName(),
		QuestionID: q.ID,
		UserAnswer: text,
	}); err != nil {
		return Payload{}, fmt.Errorf("repo.LogAction > %w", err)
	}
	if _, err := s.tracker.TakeOpen(sessionID); err != nil {
		return Payload{}, fmt.Errorf("tracker.TakeOpen > %w", err)
	}

	result := s.evaluator.Evaluate(ctx, evaluation.Request{
		Question:        q.Text,
		UserAnswer:      text,
		ReferenceAnswer: q.Answer,
	})
	slog.Default().Info("free-text answer evaluated",
		"user_id", user.ID,
		"session_id", sessionID,
		"question_id", q.ID,
		"outcome", result.Outcome,
		"elapsed", result.Elapsed,
	)

	return Payload{
		Status:   StatusEvaluated,
		Question: newQuestionView(q),
		Evaluation: &EvaluationView{
			Outcome:  result.Outcome,
			Critique: result.Critique,
		},
		Actions: []Action{ActionNextQuestion},
	}, nil
}

// Progress reports how many questions the user has learned out of the whole bank.
func (s *Service) Progress(ctx context.Context, user question.User) (Payload, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return Payload{}, fmt.Errorf("repo.CountAll > %w", err)
	}
	learned, err := s.repo.CountLearned(ctx, user.ID)
	if err != nil {
		return Payload{}, fmt.Errorf("repo.CountLearned > %w", err)
	}
	return Payload{
		Status:   StatusProgress,
		Progress: &ProgressView{Total: total, Learned: learned},
		Actions:  []Action{ActionNextQuestion},
	}, nil
}

func notFound() Payload {
	return Payload{Status: StatusNotFound, Actions: []Action{ActionNextQuestion}}
}
