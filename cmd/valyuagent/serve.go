package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"valyuagent/internal/agentcore"
	"valyuagent/internal/config"
	"valyuagent/internal/db"
	"valyuagent/internal/history"
	"valyuagent/internal/server"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
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

		// The compare endpoint needs a deployed runtime; without one the
		// server still serves local agents.
		var runtime *agentcore.RuntimeClient
		if cfg.Runtime.AgentARN != "" {
			runtime, err = agentcore.NewRuntimeClient(ctx, agentcore.RuntimeConfig{
				AgentARN: cfg.Runtime.AgentARN,
				Region:   cfg.AWS.Region,
			})
			if err != nil {
				return fmt.Errorf("creating runtime client: %w", err)
			}
		}

		srv := server.NewServer(factory, runtime)
		slog.Info("starting server", "addr", cfg.Server.Addr, "runtime", cfg.Runtime.AgentARN != "")
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "override server listen address")
}
