package main

import (
	"fmt"
	"strings"

	"valyuagent/internal/agent"
	"valyuagent/internal/agentcore"
	"valyuagent/internal/config"

	"github.com/spf13/cobra"
)

var runtimeARN string

var runtimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Invoke a deployed AgentCore Runtime agent",
}

func buildRuntime(cmd *cobra.Command) (*agentcore.RuntimeClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	arn := runtimeARN
	if arn == "" {
		arn = cfg.Runtime.AgentARN
	}
	return agentcore.NewRuntimeClient(cmd.Context(), agentcore.RuntimeConfig{
		AgentARN: arn,
		Region:   cfg.AWS.Region,
	})
}

var runtimeInvokeCmd = &cobra.Command{
	Use:   "invoke <prompt...>",
	Short: "Invoke the runtime without streaming",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		client, err := buildRuntime(cmd)
		if err != nil {
			return err
		}
		text, err := client.Invoke(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

var runtimeStreamCmd = &cobra.Command{
	Use:   "stream <prompt...>",
	Short: "Stream a response from the runtime",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		client, err := buildRuntime(cmd)
		if err != nil {
			return err
		}
		client.Query(cmd.Context(), strings.Join(args, " "), printEvent)
		return nil
	},
}

var runtimeCompareCmd = &cobra.Command{
	Use:   "compare <prompt...>",
	Short: "Answer with and without tools, side by side",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		client, err := buildRuntime(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		prompt := strings.Join(args, " ")

		withTools := client.Stream(ctx, prompt)
		noTools := client.Stream(ctx, agentcore.NoToolsPrompt(prompt))

		var withText, withoutText string
		for withTools != nil || noTools != nil {
			select {
			case ev, ok := <-withTools:
				if !ok {
					withTools = nil
					continue
				}
				if ev.Type == agent.EventDone {
					withText, _ = ev.Data.(string)
				}
			case ev, ok := <-noTools:
				if !ok {
					noTools = nil
					continue
				}
				if ev.Type == agent.EventDone {
					withoutText, _ = ev.Data.(string)
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		fmt.Println("=== WITHOUT TOOLS ===")
		fmt.Println(withoutText)
		fmt.Println()
		fmt.Println("=== WITH TOOLS ===")
		fmt.Println(withText)
		return nil
	},
}

func init() {
	runtimeCmd.PersistentFlags().StringVar(&runtimeARN, "arn", "", "agent runtime ARN (overrides config)")

	runtimeCmd.AddCommand(runtimeInvokeCmd)
	runtimeCmd.AddCommand(runtimeStreamCmd)
	runtimeCmd.AddCommand(runtimeCompareCmd)
}
