package main

import (
	"fmt"
	"os/user"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/quizbot/internal/cli"
	"github.com/at-ishikawa/quizbot/internal/question"
)

type userFlags struct {
	id       int64
	username string
}

func (f *userFlags) register(flags *pflag.FlagSet) {
	flags.Int64Var(&f.id, "user-id", 0, "user id whose learned questions are tracked (default: the OS user id)")
	flags.StringVar(&f.username, "username", "", "name recorded in the action log (default: the OS user name)")
}

// resolve falls back to the OS account for values not given on the command line.
func (f *userFlags) resolve() (question.User, error) {
	u := question.User{ID: f.id, Username: f.username}
	if u.ID != 0 && u.Username != "" {
		return u, nil
	}
	current, err := user.Current()
	if err != nil {
		return question.User{}, fmt.Errorf("user.Current > %w", err)
	}
	if u.Username == "" {
		u.Username = current.Username
	}
	if u.ID == 0 {
		uid, err := strconv.ParseInt(current.Uid, 10, 64)
		if err != nil || uid <= 0 {
			return question.User{}, fmt.Errorf("--user-id is required: OS uid %q is not a positive number", current.Uid)
		}
		u.ID = uid
	}
	return u, nil
}

func newQuizCommand() *cobra.Command {
	var flags userFlags
	command := &cobra.Command{
		Use:   "quiz",
		Short: "Practice interview questions in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			u, err := flags.resolve()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			quizCLI := cli.NewInteractiveQuizCLI(a.service, u)
			if err := quizCLI.Start(ctx); err != nil {
				return err
			}
			return quizCLI.Run(ctx, quizCLI)
		},
	}
	flags.register(command.Flags())
	return command
}
