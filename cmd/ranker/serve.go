package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mateo/candidate-ranker/internal/config"
	"github.com/mateo/candidate-ranker/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for candidate ranking, the audit history, and job search.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a config JSON file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.FromEnv()

	if cfg.Port == 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		EmbedServiceURL: cfg.EmbedServiceURL,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		MLServiceURL:    cfg.MLServiceURL,
		DictionaryPath:  cfg.DictionaryPath,
		JobsAPIBaseURL:  cfg.JobsAPIBaseURL,
		JobsAPIKey:      cfg.JobsAPIKey,
		AuditCapacity:   cfg.AuditCapacity,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
