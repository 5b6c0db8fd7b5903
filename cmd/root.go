// Package cmd defines the chai command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var plain bool

var rootCmd = &cobra.Command{
	Use:   "chai",
	Short: "Chat with AI in the terminal",
	Long: `chai is an interactive terminal client for chatting with language
models across providers.

Examples:
  chai chat openai:gpt-4o-mini       # Chat with a specific model
  chai chat                          # Chat with the configured default
  chai list                          # List available models
  chai --plain chat ollama:llama3.1  # Plain text output`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "plain text output")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
