// Package main provides the entry point for the HireDesk HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiredesk",
	Short: "HireDesk recruitment API server",
	Long:  "HireDesk manages hiring-pipeline status transitions, candidate notifications, and AI-generated skill assessments via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
