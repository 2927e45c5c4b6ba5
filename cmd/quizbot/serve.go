package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/quizbot/internal/bootstrap"
	"github.com/at-ishikawa/quizbot/internal/server"
)

func newServeCommand() *cobra.Command {
	var port int
	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}

			srv := server.NewServer(a.service, a.tracker, cfg.Server)
			lifecycle := bootstrap.New()
			lifecycle.AddShutdownHook(func(context.Context) error {
				return a.Close()
			})
			lifecycle.AddShutdownHook(srv.Shutdown)

			return lifecycle.Run(ctx, func(ctx context.Context) error {
				err := srv.ListenAndServe(ctx)
				if err != nil {
					_ = a.Close()
				}
				return err
			})
		},
	}
	command.Flags().IntVar(&port, "port", 0, "port to listen on, overriding server.port")
	return command
}
