package main

import (
	"fmt"
	"os"
	"strings"

	"valyuagent/internal/agent"
	"valyuagent/internal/agentcore"
	"valyuagent/internal/config"
	"valyuagent/internal/llm"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	gatewayID         string
	gatewayURL        string
	gatewayTargetName string
	gatewayTargetID   string
	gatewayConfigPath string
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Manage the Valyu target on an AgentCore Gateway",
}

var gatewayAddTargetCmd = &cobra.Command{
	Use:   "add-target",
	Short: "Register the Valyu MCP server as a gateway target",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if gatewayID == "" {
			return fmt.Errorf("--gateway-id is required")
		}

		client, err := agentcore.NewGatewayClient(cmd.Context(), cfg.AWS.Region)
		if err != nil {
			return err
		}

		targetID, err := client.AddTarget(cmd.Context(), agentcore.AddTargetParams{
			GatewayID:   gatewayID,
			ValyuAPIKey: cfg.Valyu.APIKey,
			TargetName:  gatewayTargetName,
		})
		if err != nil {
			return err
		}

		// Merge into an existing config file so Cognito credentials written
		// by other tooling survive.
		gwCfg, err := agentcore.LoadGatewayConfig(gatewayConfigPath)
		if err != nil {
			gwCfg = &agentcore.GatewayConfig{}
		}
		gwCfg.GatewayID = gatewayID
		if gatewayURL != "" {
			gwCfg.GatewayURL = gatewayURL
		}
		gwCfg.TargetID = targetID
		gwCfg.Region = cfg.AWS.Region
		if err := gwCfg.Save(gatewayConfigPath); err != nil {
			return fmt.Errorf("saving gateway config: %w", err)
		}

		fmt.Printf("target %s ready, config saved to %s\n", targetID, gatewayConfigPath)
		return nil
	},
}

var gatewayListTargetsCmd = &cobra.Command{
	Use:   "list-targets",
	Short: "List targets on the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		gwCfg, err := loadGateway()
		if err != nil {
			return err
		}

		client, err := agentcore.NewGatewayClient(cmd.Context(), gwCfg.Region)
		if err != nil {
			return err
		}

		targets, err := client.ListTargets(cmd.Context(), gwCfg.GatewayID)
		if err != nil {
			return err
		}
		for _, t := range targets {
			fmt.Printf("%s\t%s\t%s\n", t.TargetID, t.Name, t.Status)
		}
		return nil
	},
}

var gatewayRemoveTargetCmd = &cobra.Command{
	Use:   "remove-target",
	Short: "Remove a target from the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		gwCfg, err := loadGateway()
		if err != nil {
			return err
		}

		targetID := gatewayTargetID
		if targetID == "" {
			targetID = gwCfg.TargetID
		}
		if targetID == "" {
			return fmt.Errorf("--target-id is required")
		}

		client, err := agentcore.NewGatewayClient(cmd.Context(), gwCfg.Region)
		if err != nil {
			return err
		}
		if err := client.RemoveTarget(cmd.Context(), gwCfg.GatewayID, targetID); err != nil {
			return err
		}
		fmt.Printf("target %s removed\n", targetID)
		return nil
	},
}

var gatewayCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Tear down the target, gateway, and Cognito resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		gwCfg, err := loadGateway()
		if err != nil {
			return err
		}

		client, err := agentcore.NewGatewayClient(cmd.Context(), gwCfg.Region)
		if err != nil {
			return err
		}
		client.Cleanup(cmd.Context(), gwCfg)

		if err := os.Remove(gatewayConfigPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing gateway config: %w", err)
		}
		fmt.Println("cleanup complete")
		return nil
	},
}

var gatewayTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a fresh gateway access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		gwCfg, err := loadGateway()
		if err != nil {
			return err
		}
		token, err := agentcore.Token(cmd.Context(), gwCfg)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var gatewayToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the gateway exposes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ga, err := connectGateway(cmd)
		if err != nil {
			return err
		}
		defer ga.Close()

		for _, t := range ga.Tools() {
			fmt.Printf("%s\t%s\n", agent.CleanName(t.Name()), t.Description())
		}
		return nil
	},
}

var gatewayAgentCmd = &cobra.Command{
	Use:   "agent <query...>",
	Short: "Ask a question using the gateway's tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		llmCfg, ok := cfg.LLMs[cfg.DefaultLLM]
		if !ok {
			return fmt.Errorf("default LLM %q not found in config", cfg.DefaultLLM)
		}

		ga, err := connectGateway(cmd)
		if err != nil {
			return err
		}
		defer ga.Close()

		registry := agent.NewRegistry()
		for _, t := range ga.Tools() {
			registry.Register(t)
		}

		provider := llm.NewOpenAI(llmCfg.BaseURL, llmCfg.APIKey, llmCfg.Model)
		runner := agent.NewReactRunner(provider, nil, registry)

		return runner.Run(cmd.Context(), uuid.NewString(), strings.Join(args, " "), printEvent)
	},
}

func loadGateway() (*agentcore.GatewayConfig, error) {
	gwCfg, err := agentcore.LoadGatewayConfig(gatewayConfigPath)
	if err != nil {
		return nil, fmt.Errorf("no gateway config at %s, run add-target first: %w", gatewayConfigPath, err)
	}
	if gatewayID != "" {
		gwCfg.GatewayID = gatewayID
	}
	return gwCfg, nil
}

func connectGateway(cmd *cobra.Command) (*agentcore.GatewayAgent, error) {
	gwCfg, err := loadGateway()
	if err != nil {
		return nil, err
	}
	if gwCfg.GatewayURL == "" {
		return nil, fmt.Errorf("gateway config has no gateway_url")
	}

	token, err := agentcore.Token(cmd.Context(), gwCfg)
	if err != nil {
		return nil, err
	}
	return agentcore.ConnectGateway(cmd.Context(), gwCfg.GatewayURL, token)
}

func init() {
	gatewayCmd.PersistentFlags().StringVar(&gatewayConfigPath, "config", agentcore.DefaultConfigPath, "gateway config file")
	gatewayCmd.PersistentFlags().StringVar(&gatewayID, "gateway-id", "", "gateway identifier")

	gatewayAddTargetCmd.Flags().StringVar(&gatewayURL, "gateway-url", "", "gateway MCP endpoint URL")
	gatewayAddTargetCmd.Flags().StringVar(&gatewayTargetName, "name", agentcore.DefaultTargetName, "target name")
	gatewayRemoveTargetCmd.Flags().StringVar(&gatewayTargetID, "target-id", "", "target to remove")

	gatewayCmd.AddCommand(gatewayAddTargetCmd)
	gatewayCmd.AddCommand(gatewayListTargetsCmd)
	gatewayCmd.AddCommand(gatewayRemoveTargetCmd)
	gatewayCmd.AddCommand(gatewayCleanupCmd)
	gatewayCmd.AddCommand(gatewayTokenCmd)
	gatewayCmd.AddCommand(gatewayToolsCmd)
	gatewayCmd.AddCommand(gatewayAgentCmd)
}
