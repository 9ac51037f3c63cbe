package main

import (
	"context"
	"fmt"
	"strings"

	"valyuagent/internal/config"
	"valyuagent/internal/db"
	"valyuagent/internal/history"
	"valyuagent/internal/trace"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	agentProfile string
	agentSession string
)

var agentCmd = &cobra.Command{
	Use:   "agent <query...>",
	Short: "Ask a research agent a question",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		ctx := cmd.Context()
		if cfg.Trace.Endpoint != "" {
			shutdown, err := trace.Init(ctx, trace.Config{
				Endpoint: cfg.Trace.Endpoint,
				URLPath:  cfg.Trace.URLPath,
				APIKey:   cfg.Trace.APIKey,
			})
			if err != nil {
				return fmt.Errorf("initializing tracing: %w", err)
			}
			defer shutdown(context.Background())
		}

		database, err := db.Open(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		factory, err := buildFactory(cfg, history.NewStore(database))
		if err != nil {
			return err
		}

		runner, err := factory.Build(agentProfile)
		if err != nil {
			return err
		}

		session := agentSession
		if session == "" {
			session = uuid.NewString()
		}

		return runner.Run(ctx, session, strings.Join(args, " "), printEvent)
	},
}

func init() {
	agentCmd.Flags().StringVarP(&agentProfile, "profile", "p", "research-assistant", "agent profile to use")
	agentCmd.Flags().StringVarP(&agentSession, "session", "s", "", "session id for multi-turn conversations")
}
