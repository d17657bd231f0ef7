// Package main provides the entry point for the SmartHire resume screening server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smarthire",
	Short: "SmartHire resume screening API server",
	Long:  "SmartHire screens uploaded resumes against a job description, ranking candidates by a weighted blend of semantic similarity and skill, experience and education overlap.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
