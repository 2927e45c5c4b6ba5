package quiz

import (
	"fmt"

	"github.com/at-ishikawa/quizbot/internal/evaluation"
)

// MessageRetrievalFailed is shown when the question store could not be reached.
const MessageRetrievalFailed = "Could not load a question right now. Please try again later."

var statusMessages = map[Status]string{
	StatusQuestion:       "Here is your question.",
	StatusAnswer:         "Here is the reference answer. Did you know it?",
	StatusRepeat:         "Okay, this question stays in your deck.",
	StatusEvaluated:      "Thanks for your answer.",
	StatusExhausted:      "You have learned every question. Well done!",
	StatusEmpty:          "There are no questions yet.",
	StatusNotFound:       "That question is no longer open. Request a new one.",
	StatusNotRevealed:    "Show the answer before deciding.",
	StatusNoOpenQuestion: "There is no open question to answer. Request a new one first.",
	StatusBusy:           "Many answers are being recorded right now. Please try again.",
	StatusInvalidRequest: "Invalid request.",
}

var evaluationMessages = map[evaluation.Outcome]string{
	evaluation.OutcomeBlocked:     "Answer review is not available in this region. Your answer was saved.",
	evaluation.OutcomeTimedOut:    "Answer review took too long. Your answer was saved.",
	evaluation.OutcomeUnavailable: "Answer review is not configured. Your answer was saved.",
	evaluation.OutcomeFailed:      "Answer review failed. Your answer was saved.",
}

// Message is the canned user text for a payload. It never contains internal error details.
func Message(p Payload) string {
	switch p.Status {
	case StatusLearned:
		if p.Inserted {
			return "Marked as learned."
		}
		return "You had already learned this question."
	case StatusProgress:
		if p.Progress == nil {
			return ""
		}
		return fmt.Sprintf("Learned %d of %d questions, %d remaining.", p.Progress.Learned, p.Progress.Total, p.Progress.Remaining())
	case StatusEvaluated:
		if p.Evaluation == nil {
			return statusMessages[StatusEvaluated]
		}
		if p.Evaluation.Outcome == evaluation.OutcomeCritique {
			return p.Evaluation.Critique
		}
		return evaluationMessages[p.Evaluation.Outcome]
	}
	return statusMessages[p.Status]
}
