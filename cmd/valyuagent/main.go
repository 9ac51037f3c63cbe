package main

import (
	"os"

	"valyuagent/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	godotenv.Load()
	logger.Init()

	rootCmd := &cobra.Command{
		Use:   "valyuagent",
		Short: "Valyu search tools and research agents",
	}

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gatewayCmd)
	rootCmd.AddCommand(runtimeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
