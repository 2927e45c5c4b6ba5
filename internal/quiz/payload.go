package quiz

import (
	"github.com/samber/lo"

	"github.com/at-ishikawa/quizbot/internal/evaluation"
	"github.com/at-ishikawa/quizbot/internal/question"
)

// Status says what a Payload describes.
type Status string

const (
	StatusQuestion       Status = "question"
	StatusAnswer         Status = "answer"
	StatusLearned        Status = "learned"
	StatusRepeat         Status = "repeat"
	StatusEvaluated      Status = "evaluated"
	StatusProgress       Status = "progress"
	StatusExhausted      Status = "exhausted"
	StatusEmpty          Status = "empty"
	StatusNotFound       Status = "not_found"
	StatusNotRevealed    Status = "not_revealed"
	StatusNoOpenQuestion Status = "no_open_question"
	StatusBusy           Status = "busy"
	StatusInvalidRequest Status = "invalid_request"
)

// Action is a follow-up the user can take after a Payload.
type Action string

const (
	ActionShowAnswer   Action = "show_answer"
	ActionLearned      Action = "learned"
	ActionRepeat       Action = "repeat"
	ActionNextQuestion Action = "next_question"
	ActionAnswerText   Action = "answer_text"
)

// Decision is how the user resolves a revealed question.
type Decision string

const (
	DecisionLearned Decision = "learned"
	DecisionRepeat  Decision = "repeat"
)

func (d Decision) Valid() bool {
	return d == DecisionLearned || d == DecisionRepeat
}

// QuestionView is a question without its answer.
type QuestionView struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Topic     string `json:"topic,omitempty"`
	HasAnswer bool   `json:"has_answer"`
}

func newQuestionView(q *question.Question) *QuestionView {
	return &QuestionView{
		ID:        q.ID,
		Text:      q.Text,
		Topic:     q.Topic,
		HasAnswer: q.HasAnswer(),
	}
}

type EvaluationView struct {
	Outcome  evaluation.Outcome `json:"outcome"`
	Critique string             `json:"critique,omitempty"`
}

type ProgressView struct {
	Total   int64 `json:"total"`
	Learned int64 `json:"learned"`
}

// Remaining is the number of questions not yet learned.
func (p ProgressView) Remaining() int64 {
	return max(p.Total-p.Learned, 0)
}

// Payload is a transport-neutral reply. Answer is only set once the answer was revealed.
type Payload struct {
	Status     Status          `json:"status"`
	Question   *QuestionView   `json:"question,omitempty"`
	Answer     string          `json:"answer,omitempty"`
	Inserted   bool            `json:"inserted,omitempty"`
	Evaluation *EvaluationView `json:"evaluation,omitempty"`
	Progress   *ProgressView   `json:"progress,omitempty"`
	Actions    []Action        `json:"actions"`
}

// Allows reports whether action is one of the payload's follow-ups.
func (p Payload) Allows(action Action) bool {
	return lo.Contains(p.Actions, action)
}
