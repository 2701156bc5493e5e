// Package main provides the entry point for the MallaLaunchpad HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "MallaLaunchpad HTTP API Server",
	Long:  "MallaLaunchpad is a job-search productivity backend: a Kanban application tracker with AI-backed cover letters, resume reviews, ATS reports and mock interviews, served via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
