// Package main provides the entry point for the Response Library HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "response_library",
	Short: "Interview Response Library HTTP API Server",
	Long:  "Response Library manages versioned interview answers with practice coaching, outcome tracking, and job-relevance ranking via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
