package main

import (
	"fmt"
	"os"

	"valyuagent/internal/agent"
	"valyuagent/internal/config"
	"valyuagent/internal/history"
	"valyuagent/internal/llm"
	"valyuagent/internal/tools"
	"valyuagent/internal/valyu"
)

func buildToolset(cfg *config.Config) (*tools.Toolset, error) {
	var opts []valyu.Option
	if cfg.Valyu.BaseURL != "" {
		opts = append(opts, valyu.WithBaseURL(cfg.Valyu.BaseURL))
	}
	client, err := valyu.New(cfg.Valyu.APIKey, opts...)
	if err != nil {
		return nil, err
	}
	return tools.NewToolset(client, tools.Options{
		MaxResults: cfg.Valyu.MaxResults,
		MaxPrice:   cfg.Valyu.MaxPrice,
	}), nil
}

func buildFactory(cfg *config.Config, store *history.Store) (*agent.RunnerFactory, error) {
	toolset, err := buildToolset(cfg)
	if err != nil {
		return nil, err
	}

	registry := agent.NewRegistry()
	toolset.Register(registry)

	llmCfg, ok := cfg.LLMs[cfg.DefaultLLM]
	if !ok {
		return nil, fmt.Errorf("default LLM %q not found in config", cfg.DefaultLLM)
	}
	provider := llm.NewOpenAI(llmCfg.BaseURL, llmCfg.APIKey, llmCfg.Model)

	return agent.NewRunnerFactory(provider, store, registry, tools.DefaultProfiles()), nil
}

// printEvent renders one agent event for terminal output: answer text goes
// to stdout, progress notices to stderr.
func printEvent(ev agent.Event) {
	switch ev.Type {
	case agent.EventToken:
		fmt.Print(ev.Data)
	case agent.EventToolCall:
		if m, ok := ev.Data.(map[string]string); ok {
			fmt.Fprintf(os.Stderr, "\n[searching: %s]\n", m["name"])
		}
	case agent.EventToolDone:
		fmt.Fprintln(os.Stderr, "[search complete]")
	case agent.EventSources:
		if srcs, ok := ev.Data.([]agent.Source); ok {
			fmt.Fprintln(os.Stderr, "\nSources:")
			for _, s := range srcs {
				fmt.Fprintf(os.Stderr, "  - %s (%s)\n", s.Title, s.URL)
			}
		}
	case agent.EventError:
		fmt.Fprintf(os.Stderr, "\nerror: %v\n", ev.Data)
	case agent.EventDone:
		fmt.Println()
	}
}
