package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/quizbot/internal/evaluation"
	mock_cli "github.com/at-ishikawa/quizbot/internal/mocks/cli"
	"github.com/at-ishikawa/quizbot/internal/question"
	"github.com/at-ishikawa/quizbot/internal/quiz"
)

var testUser = question.User{ID: 5, Username: "dave"}

func newTestCLI(t *testing.T, input string) (*InteractiveQuizCLI, *mock_cli.MockQuizService, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	ctrl := gomock.NewController(t)
	service := mock_cli.NewMockQuizService(ctrl)
	var out bytes.Buffer
	return newInteractiveQuizCLI(service, testUser, strings.NewReader(input), &out), service, &out
}

func presented(id int64) quiz.Payload {
	return quiz.Payload{
		Status:   quiz.StatusQuestion,
		Question: &quiz.QuestionView{ID: id, Text: "What is a transformer?", Topic: "NLP", HasAnswer: true},
		Actions:  []quiz.Action{quiz.ActionShowAnswer, quiz.ActionAnswerText, quiz.ActionNextQuestion},
	}
}

func TestInteractiveQuizCLI_Session(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		current    int64
		setupMock  func(service *mock_cli.MockQuizService)
		wantReturn error
		wantOutput []string
		wantOpen   int64
	}{
		{
			name:  "next question",
			input: "n\n",
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().RequestQuestion(gomock.Any(), "terminal-5", testUser).Return(presented(3), nil)
			},
			wantOutput: []string{"Question #3", "Topic: NLP", "What is a transformer?", "a: show answer"},
			wantOpen:   3,
		},
		{
			name:    "show answer",
			input:   "a\n",
			current: 3,
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().RevealAnswer(gomock.Any(), "terminal-5", int64(3)).Return(quiz.Payload{
					Status:   quiz.StatusAnswer,
					Question: &quiz.QuestionView{ID: 3, Text: "What is a transformer?"},
					Answer:   "An attention-based architecture.",
					Actions:  []quiz.Action{quiz.ActionLearned, quiz.ActionRepeat, quiz.ActionNextQuestion},
				}, nil)
			},
			wantOutput: []string{"Answer:", "An attention-based architecture.", "l: learned, r: repeat"},
			wantOpen:   3,
		},
		{
			name:       "show answer without open question",
			input:      "a\n",
			wantOutput: []string{"There is no open question to answer."},
		},
		{
			name:    "learned",
			input:   "L\n",
			current: 3,
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().Resolve(gomock.Any(), "terminal-5", testUser, int64(3), quiz.DecisionLearned).
					Return(quiz.Payload{Status: quiz.StatusLearned, Inserted: true, Actions: []quiz.Action{quiz.ActionNextQuestion}}, nil)
			},
			wantOutput: []string{"Marked as learned."},
		},
		{
			name:    "repeat",
			input:   "r\n",
			current: 3,
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().Resolve(gomock.Any(), "terminal-5", testUser, int64(3), quiz.DecisionRepeat).
					Return(quiz.Payload{Status: quiz.StatusRepeat}, nil)
			},
			wantOutput: []string{"stays in your deck"},
		},
		{
			name:    "resolve before reveal keeps the question",
			input:   "l\n",
			current: 3,
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().Resolve(gomock.Any(), "terminal-5", testUser, int64(3), quiz.DecisionLearned).
					Return(quiz.Payload{Status: quiz.StatusNotRevealed, Actions: []quiz.Action{quiz.ActionShowAnswer}}, nil)
			},
			wantOutput: []string{"Show the answer before deciding."},
			wantOpen:   3,
		},
		{
			name:    "free text answer",
			input:   "It uses self-attention\n",
			current: 3,
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().SubmitFreeText(gomock.Any(), "terminal-5", testUser, "It uses self-attention").
					Return(quiz.Payload{
						Status:     quiz.StatusEvaluated,
						Evaluation: &quiz.EvaluationView{Outcome: evaluation.OutcomeCritique, Critique: "Correct, mention positional encodings."},
					}, nil)
			},
			wantOutput: []string{"Correct, mention positional encodings."},
		},
		{
			name:    "evaluation timeout",
			input:   "It uses self-attention\n",
			current: 3,
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().SubmitFreeText(gomock.Any(), "terminal-5", testUser, "It uses self-attention").
					Return(quiz.Payload{Status: quiz.StatusEvaluated, Evaluation: &quiz.EvaluationView{Outcome: evaluation.OutcomeTimedOut}}, nil)
			},
			wantOutput: []string{"Answer review took too long. Your answer was saved."},
		},
		{
			name:  "progress",
			input: "p\n",
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().Progress(gomock.Any(), testUser).
					Return(quiz.Payload{Status: quiz.StatusProgress, Progress: &quiz.ProgressView{Total: 4, Learned: 1}}, nil)
			},
			wantOutput: []string{"Learned 1 of 4 questions, 3 remaining."},
		},
		{
			name:  "retrieval failure is shown without details",
			input: "n\n",
			setupMock: func(service *mock_cli.MockQuizService) {
				service.EXPECT().RequestQuestion(gomock.Any(), "terminal-5", testUser).
					Return(quiz.Payload{}, fmt.Errorf("%w: CountAll > dial tcp: refused", question.ErrRetrieval))
			},
			wantOutput: []string{quiz.MessageRetrievalFailed},
		},
		{
			name:       "quit",
			input:      "quit\n",
			wantReturn: errEnd,
		},
		{
			name:       "end of input",
			input:      "",
			wantReturn: errEnd,
		},
		{
			name:       "blank line",
			input:      "\n",
			current:    3,
			wantOpen:   3,
			wantOutput: []string{"> "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, service, out := newTestCLI(t, tt.input)
			cli.current = tt.current
			if tt.setupMock != nil {
				tt.setupMock(service)
			}

			err := cli.Session(context.Background())
			if tt.wantReturn != nil {
				assert.ErrorIs(t, err, tt.wantReturn)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
			assert.NotContains(t, out.String(), "refused")
			assert.Equal(t, tt.wantOpen, cli.current)
		})
	}
}

func TestInteractiveQuizCLI_Run(t *testing.T) {
	t.Run("stops at end", func(t *testing.T) {
		cli, _, _ := newTestCLI(t, "")
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		gomock.InOrder(
			session.EXPECT().Session(gomock.Any()).Return(nil),
			session.EXPECT().Session(gomock.Any()).Return(errEnd),
		)

		assert.NoError(t, cli.Run(context.Background(), session))
	})

	t.Run("returns session error", func(t *testing.T) {
		cli, _, _ := newTestCLI(t, "")
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		session.EXPECT().Session(gomock.Any()).Return(errors.New("broken pipe"))

		err := cli.Run(context.Background(), session)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken pipe")
	})
}

func TestInteractiveQuizCLI_Start(t *testing.T) {
	cli, service, out := newTestCLI(t, "")
	service.EXPECT().RequestQuestion(gomock.Any(), "terminal-5", testUser).
		Return(quiz.Payload{Status: quiz.StatusEmpty}, nil)

	require.NoError(t, cli.Start(context.Background()))
	assert.Contains(t, out.String(), "Commands:")
	assert.Contains(t, out.String(), "There are no questions yet.")
}
