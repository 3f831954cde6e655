// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Collaborator endpoints
	EmbedServiceURL string `json:"embed_service_url,omitempty"` // SBERT sidecar /embed endpoint
	MLServiceURL    string `json:"ml_service_url,omitempty"`    // ML relevance predict endpoint
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`    // Alternative embedding provider

	// External job search provider
	JobsAPIBaseURL string `json:"jobs_api_base_url,omitempty"`
	JobsAPIKey     string `json:"jobs_api_key,omitempty"`

	// Entity dictionary
	DictionaryPath string `json:"dictionary,omitempty"` // Path to a replacement dictionary JSON

	// Server
	Port          int `json:"port,omitempty"`
	AuditCapacity int `json:"audit_capacity,omitempty"`

	// Ranking toggles
	RemoveStopwords bool `json:"remove_stopwords,omitempty"`
	Anonymize       bool `json:"anonymize,omitempty"`
	UseEmbeddings   bool `json:"use_embeddings,omitempty"`
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills collaborator settings from the environment. Values already
// present in the config win over the environment.
func (c *Config) FromEnv() {
	if c.EmbedServiceURL == "" {
		c.EmbedServiceURL = os.Getenv("EMBED_SERVICE_URL")
	}
	if c.MLServiceURL == "" {
		c.MLServiceURL = os.Getenv("ML_SERVICE_URL")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.JobsAPIBaseURL == "" {
		c.JobsAPIBaseURL = os.Getenv("JOBS_API_BASE")
	}
	if c.JobsAPIKey == "" {
		c.JobsAPIKey = os.Getenv("JOBS_API_KEY")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.AuditCapacity < 0 {
		return fmt.Errorf("config error: 'audit_capacity' must be non-negative")
	}

	if c.DictionaryPath != "" {
		if _, err := os.Stat(c.DictionaryPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: dictionary file not found: %s", c.DictionaryPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.EmbedServiceURL == "" {
		result.EmbedServiceURL = defaults.EmbedServiceURL
	}
	if result.MLServiceURL == "" {
		result.MLServiceURL = defaults.MLServiceURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.JobsAPIBaseURL == "" {
		result.JobsAPIBaseURL = defaults.JobsAPIBaseURL
	}
	if result.JobsAPIKey == "" {
		result.JobsAPIKey = defaults.JobsAPIKey
	}
	if result.DictionaryPath == "" {
		result.DictionaryPath = defaults.DictionaryPath
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AuditCapacity == 0 {
		result.AuditCapacity = defaults.AuditCapacity
	}

	return result
}
