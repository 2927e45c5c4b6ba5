package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/quizbot/internal/evaluation"
	"github.com/at-ishikawa/quizbot/internal/question"
	"github.com/at-ishikawa/quizbot/internal/quiz"
)

//go:generate mockgen -source=interactive_quiz_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli

// QuizService is the set of quiz actions the terminal drives.
type QuizService interface {
	RequestQuestion(ctx context.Context, sessionID string, user question.User) (quiz.Payload, error)
	RevealAnswer(ctx context.Context, sessionID string, questionID int64) (quiz.Payload, error)
	Resolve(ctx context.Context, sessionID string, user question.User, questionID int64, decision quiz.Decision) (quiz.Payload, error)
	SubmitFreeText(ctx context.Context, sessionID string, user question.User, text string) (quiz.Payload, error)
	Progress(ctx context.Context, user question.User) (quiz.Payload, error)
}

type Session interface {
	Session(context context.Context) error
}

var errEnd = errors.New("end")

const (
	commandNext     = "n"
	commandAnswer   = "a"
	commandLearned  = "l"
	commandRepeat   = "r"
	commandProgress = "p"
	commandHelp     = "h"
	commandQuit     = "quit"
)

// InteractiveQuizCLI quizzes one user in the terminal, which acts as the chat session.
type InteractiveQuizCLI struct {
	service      QuizService
	user         question.User
	sessionID    string
	current      int64
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
}

func NewInteractiveQuizCLI(service QuizService, user question.User) *InteractiveQuizCLI {
	return newInteractiveQuizCLI(service, user, os.Stdin, os.Stdout)
}

func newInteractiveQuizCLI(service QuizService, user question.User, stdin io.Reader, stdout io.Writer) *InteractiveQuizCLI {
	return &InteractiveQuizCLI{
		service:      service,
		user:         user,
		sessionID:    fmt.Sprintf("terminal-%d", user.ID),
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}
}

func (cli *InteractiveQuizCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Start prints the help and draws the first question.
func (cli *InteractiveQuizCLI) Start(ctx context.Context) error {
	cli.printHelp()
	return cli.dispatch(ctx, commandNext)
}

// Session reads one line and performs it. Anything that is not a command is an answer to the open question.
func (cli *InteractiveQuizCLI) Session(ctx context.Context) error {
	_, _ = cli.bold.Fprint(cli.stdoutWriter, "> ")
	line, err := cli.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
		return errEnd
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading input: %w", err)
	}
	return cli.dispatch(ctx, strings.TrimSpace(line))
}

func (cli *InteractiveQuizCLI) dispatch(ctx context.Context, input string) error {
	var (
		payload quiz.Payload
		err     error
	)
	command := strings.ToLower(input)
	switch command {
	case "":
		return nil
	case commandQuit, "q", "exit":
		return errEnd
	case commandHelp, "help":
		cli.printHelp()
		return nil
	case commandNext:
		payload, err = cli.service.RequestQuestion(ctx, cli.sessionID, cli.user)
	case commandAnswer:
		if !cli.requireOpen() {
			return nil
		}
		payload, err = cli.service.RevealAnswer(ctx, cli.sessionID, cli.current)
	case commandLearned, commandRepeat:
		if !cli.requireOpen() {
			return nil
		}
		decision := quiz.DecisionRepeat
		if command == commandLearned {
			decision = quiz.DecisionLearned
		}
		payload, err = cli.service.Resolve(ctx, cli.sessionID, cli.user, cli.current, decision)
	case commandProgress:
		payload, err = cli.service.Progress(ctx, cli.user)
	default:
		payload, err = cli.service.SubmitFreeText(ctx, cli.sessionID, cli.user, input)
	}
	if errors.Is(err, question.ErrRetrieval) {
		_, _ = cli.red.Fprintln(cli.stdoutWriter, quiz.MessageRetrievalFailed)
		return nil
	}
	if err != nil {
		return err
	}

	cli.track(payload)
	cli.render(payload)
	return nil
}

func (cli *InteractiveQuizCLI) requireOpen() bool {
	if cli.current != 0 {
		return true
	}
	_, _ = fmt.Fprintln(cli.stdoutWriter, quiz.Message(quiz.Payload{Status: quiz.StatusNoOpenQuestion}))
	return false
}

// track follows which question the session has open so buttons can refer to it.
func (cli *InteractiveQuizCLI) track(payload quiz.Payload) {
	switch payload.Status {
	case quiz.StatusQuestion:
		cli.current = payload.Question.ID
	case quiz.StatusAnswer, quiz.StatusNotRevealed, quiz.StatusProgress, quiz.StatusBusy, quiz.StatusInvalidRequest:
	default:
		cli.current = 0
	}
}

func (cli *InteractiveQuizCLI) render(payload quiz.Payload) {
	w := cli.stdoutWriter
	if q := payload.Question; q != nil && payload.Status != quiz.StatusEvaluated {
		_, _ = cli.bold.Fprintf(w, "Question #%d\n", q.ID)
		if q.Topic != "" {
			_, _ = cli.italic.Fprintf(w, "Topic: %s\n", q.Topic)
		}
		_, _ = fmt.Fprintln(w, q.Text)
	}
	if payload.Answer != "" {
		_, _ = cli.bold.Fprintln(w, "Answer:")
		_, _ = fmt.Fprintln(w, payload.Answer)
	} else if payload.Status == quiz.StatusAnswer {
		_, _ = fmt.Fprintln(w, "This question has no reference answer.")
	}

	message := quiz.Message(payload)
	switch {
	case payload.Status == quiz.StatusLearned || payload.Status == quiz.StatusExhausted:
		_, _ = cli.green.Fprintln(w, message)
	case payload.Evaluation != nil && payload.Evaluation.Outcome != evaluation.OutcomeCritique:
		_, _ = cli.red.Fprintln(w, message)
	case message != "" && payload.Status != quiz.StatusQuestion:
		_, _ = fmt.Fprintln(w, message)
	}

	if len(payload.Actions) > 0 {
		_, _ = fmt.Fprintf(w, "[%s]\n", cli.formatActions(payload.Actions))
	}
}

func (cli *InteractiveQuizCLI) formatActions(actions []quiz.Action) string {
	hints := make([]string, 0, len(actions))
	for _, action := range actions {
		switch action {
		case quiz.ActionShowAnswer:
			hints = append(hints, "a: show answer")
		case quiz.ActionLearned:
			hints = append(hints, "l: learned")
		case quiz.ActionRepeat:
			hints = append(hints, "r: repeat")
		case quiz.ActionNextQuestion:
			hints = append(hints, "n: next question")
		case quiz.ActionAnswerText:
			hints = append(hints, "or type your answer")
		}
	}
	return strings.Join(hints, ", ")
}

func (cli *InteractiveQuizCLI) printHelp() {
	_, _ = fmt.Fprintln(cli.stdoutWriter, "Commands: n next question, a show answer, l learned, r repeat, p progress, h help, quit")
	_, _ = fmt.Fprintln(cli.stdoutWriter, "Anything else is submitted as your answer to the open question.")
}
