// Package main provides the entry point for the Candidate Ranker CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ranker",
	Short: "Candidate ranking engine",
	Long:  "Candidate Ranker scores and ranks candidate resumes against a job description using TF-IDF or embedding similarity, entity extraction, and an anonymization fairness check.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
