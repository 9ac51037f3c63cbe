package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"valyuagent/internal/agent"
	"valyuagent/internal/config"
	"valyuagent/internal/tools"

	"github.com/spf13/cobra"
)

func domainTool(ts *tools.Toolset, domain string) (agent.Tool, bool) {
	switch domain {
	case "web":
		return ts.Web, true
	case "finance":
		return ts.Finance, true
	case "papers", "paper":
		return ts.Paper, true
	case "bio":
		return ts.Bio, true
	case "patents", "patent":
		return ts.Patent, true
	case "sec":
		return ts.SEC, true
	case "economics":
		return ts.Economics, true
	}
	return nil, false
}

var searchCmd = &cobra.Command{
	Use:   "search <domain> <query...>",
	Short: "Run one query against a Valyu search domain",
	Long: `Run one query against a Valyu search domain and print the raw result.

Domains: web, finance, papers, bio, patents, sec, economics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return cmd.Help()
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		toolset, err := buildToolset(cfg)
		if err != nil {
			return err
		}

		tool, ok := domainTool(toolset, args[0])
		if !ok {
			return fmt.Errorf("unknown search domain %q", args[0])
		}

		input, err := json.Marshal(map[string]string{
			"query": strings.Join(args[1:], " "),
		})
		if err != nil {
			return err
		}

		result, err := tool.Execute(cmd.Context(), string(input))
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	},
}
