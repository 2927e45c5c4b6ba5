// Package question provides the question bank, per-user learned state, and the unlearned-question sampler.
package question

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrRetrieval is returned when the question store could not be read or written.
	ErrRetrieval = errors.New("question retrieval failed")
	// ErrSamplingContention is returned when every sampling attempt lost a race with a concurrent learned mark.
	// The user can simply ask again.
	ErrSamplingContention = errors.New("question sampling contended, try again")
)

// Question is one interview question. Topic and Answer are empty when absent.
type Question struct {
	ID     int64  `json:"id" yaml:"id"`
	Text   string `json:"question" yaml:"question"`
	Topic  string `json:"topic,omitempty" yaml:"topic,omitempty"`
	Answer string `json:"answer,omitempty" yaml:"answer,omitempty"`
}

// HasAnswer reports whether a reference answer is stored.
func (q Question) HasAnswer() bool {
	return q.Answer != ""
}

type questionRecord struct {
	ID     int64          `db:"id"`
	Text   string         `db:"question"`
	Topic  sql.NullString `db:"topic"`
	Answer sql.NullString `db:"answer"`
}

func (r questionRecord) toQuestion() *Question {
	return &Question{
		ID:     r.ID,
		Text:   r.Text,
		Topic:  r.Topic.String,
		Answer: r.Answer.String,
	}
}

// User identifies who is being quizzed.
type User struct {
	ID       int64
	Username string
}

// DisplayName is the name recorded in logs; it falls back to the id when no username is set.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return "user_" + strconv.FormatInt(u.ID, 10)
}

// LearnedMark records that a user marked a question as learned.
type LearnedMark struct {
	UserID     int64
	Username   string
	QuestionID int64
}

// ActionLog is an append-only audit entry of a user acting on a question.
type ActionLog struct {
	Username   string
	QuestionID int64
	// UserAnswer is the submitted free text; empty for button actions and stored as NULL.
	UserAnswer string
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func retrievalError(op string, err error) error {
	return fmt.Errorf("%w: %s > %w", ErrRetrieval, op, err)
}
