package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/at-ishikawa/quizbot/internal/quiz"
)

var errInvalidCallback = errors.New("invalid callback data")

// CallbackKind is the button a chat user pressed.
type CallbackKind string

const (
	CallbackRandomQuestion CallbackKind = "random_question"
	CallbackShowAnswer     CallbackKind = "show_answer"
	CallbackLearned        CallbackKind = "learned"
	CallbackRepeat         CallbackKind = "repeat"
)

// Callback is parsed chat-button data such as "show_answer:12".
type Callback struct {
	Kind       CallbackKind
	QuestionID int64
}

func ParseCallback(data string) (Callback, error) {
	if data == string(CallbackRandomQuestion) {
		return Callback{Kind: CallbackRandomQuestion}, nil
	}

	kind, rawID, ok := strings.Cut(data, ":")
	if !ok {
		return Callback{}, fmt.Errorf("%w: %q", errInvalidCallback, data)
	}
	switch CallbackKind(kind) {
	case CallbackShowAnswer, CallbackLearned, CallbackRepeat:
	default:
		return Callback{}, fmt.Errorf("%w: unknown action %q", errInvalidCallback, kind)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return Callback{}, fmt.Errorf("%w: question id %q", errInvalidCallback, rawID)
	}
	return Callback{Kind: CallbackKind(kind), QuestionID: id}, nil
}

// Decision maps learned and repeat buttons to their resolution.
func (c Callback) Decision() quiz.Decision {
	switch c.Kind {
	case CallbackLearned:
		return quiz.DecisionLearned
	case CallbackRepeat:
		return quiz.DecisionRepeat
	}
	return ""
}

func (c Callback) String() string {
	if c.Kind == CallbackRandomQuestion {
		return string(c.Kind)
	}
	return fmt.Sprintf("%s:%d", c.Kind, c.QuestionID)
}
