package main

import (
	"fmt"
	"strings"

	"valyuagent/internal/config"
	"valyuagent/internal/valyu"

	"github.com/spf13/cobra"
)

var answerCmd = &cobra.Command{
	Use:   "answer <query...>",
	Short: "Get a synthesized answer with citations from the Valyu API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		var opts []valyu.Option
		if cfg.Valyu.BaseURL != "" {
			opts = append(opts, valyu.WithBaseURL(cfg.Valyu.BaseURL))
		}
		client, err := valyu.New(cfg.Valyu.APIKey, opts...)
		if err != nil {
			return err
		}

		resp, err := client.Answer(cmd.Context(), valyu.AnswerRequest{
			Query:    strings.Join(args, " "),
			MaxPrice: cfg.Valyu.MaxPrice,
		})
		if err != nil {
			return err
		}
		fmt.Println(resp.Answer)
		return nil
	},
}
