// Package main provides the entry point for the text enhancement HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "enhancer",
	Short: "Word-count-targeting text enhancement API server",
	Long:  "Enhancer rewrites emails and messages to a requested word count and tone, exposing the pipeline over a REST API with per-user usage quotas.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
