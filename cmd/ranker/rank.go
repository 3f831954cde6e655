// Package main implements the ranker CLI for candidate ranking runs.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mateo/candidate-ranker/internal/config"
	"github.com/mateo/candidate-ranker/internal/extract"
	"github.com/mateo/candidate-ranker/internal/observability"
	"github.com/mateo/candidate-ranker/internal/ranking"
	"github.com/mateo/candidate-ranker/internal/scoring"
	"github.com/mateo/candidate-ranker/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against a job description",
	Long:  "Scores every candidate resume against a job description, reports skill matches and gaps, and runs the raw-vs-anonymized fairness comparison.",
	RunE:  runRank,
}

var (
	rankJDPath         string
	rankCandidatesPath string
	rankConfigPath     string
	rankDictionary     string
	rankStopwords      bool
	rankAnonymize      bool
	rankEmbeddings     bool
	rankOutput         string
)

func init() {
	rankCmd.Flags().StringVarP(&rankJDPath, "jd", "j", "", "Path to the job description text file (required)")
	rankCmd.Flags().StringVarP(&rankCandidatesPath, "candidates", "c", "", "Path to the candidates JSON file (required)")
	rankCmd.Flags().StringVar(&rankConfigPath, "config", "", "Path to a config JSON file")
	rankCmd.Flags().StringVar(&rankDictionary, "dictionary", "", "Path to a replacement entity dictionary JSON")
	rankCmd.Flags().BoolVar(&rankStopwords, "remove-stopwords", false, "Drop stopwords during tokenization")
	rankCmd.Flags().BoolVar(&rankAnonymize, "anonymize", false, "Rank on anonymized resume text")
	rankCmd.Flags().BoolVar(&rankEmbeddings, "embeddings", false, "Score with the embedding collaborator instead of TF-IDF")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Write the full result JSON to this path instead of printing a summary")

	if err := rankCmd.MarkFlagRequired("jd"); err != nil {
		panic(fmt.Sprintf("failed to mark jd flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

// loadRankConfig resolves the effective config from file, env, and flags.
func loadRankConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if rankConfigPath != "" {
		loaded, err := config.Load(rankConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FromEnv()

	if rankDictionary != "" {
		cfg.DictionaryPath = rankDictionary
	}
	if rankStopwords {
		cfg.RemoveStopwords = true
	}
	if rankAnonymize {
		cfg.Anonymize = true
	}
	if rankEmbeddings {
		cfg.UseEmbeddings = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRank(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRankConfig()
	if err != nil {
		return err
	}

	// 1. Load the job description
	jdContent, err := os.ReadFile(rankJDPath)
	if err != nil {
		return fmt.Errorf("failed to read job description file %s: %w", rankJDPath, err)
	}

	// 2. Load candidates
	candidatesContent, err := os.ReadFile(rankCandidatesPath)
	if err != nil {
		return fmt.Errorf("failed to read candidates file %s: %w", rankCandidatesPath, err)
	}
	var candidates []types.Candidate
	if err := json.Unmarshal(candidatesContent, &candidates); err != nil {
		return fmt.Errorf("failed to unmarshal candidates JSON: %w", err)
	}

	// 3. Resolve the entity dictionary
	dictionary := extract.Default()
	if cfg.DictionaryPath != "" {
		dictionary, err = extract.Load(cfg.DictionaryPath)
		if err != nil {
			return fmt.Errorf("failed to load dictionary: %w", err)
		}
	}

	// 4. Wire collaborators
	var embedder scoring.Embedder
	switch {
	case cfg.EmbedServiceURL != "":
		embedder = scoring.NewHTTPEmbedder(cfg.EmbedServiceURL, nil)
	case cfg.GeminiAPIKey != "":
		gemini, err := scoring.NewGeminiEmbedder(cmd.Context(), cfg.GeminiAPIKey, "")
		if err != nil {
			return fmt.Errorf("failed to create Gemini embedder: %w", err)
		}
		defer gemini.Close()
		embedder = gemini
	}

	var relevance scoring.RelevanceScorer
	if cfg.MLServiceURL != "" {
		relevance = scoring.NewHTTPRelevanceScorer(cfg.MLServiceURL, nil)
	}

	// 5. Rank
	result, err := ranking.Rank(cmd.Context(), string(jdContent), candidates, ranking.Options{
		RemoveStopwords: cfg.RemoveStopwords,
		Anonymize:       cfg.Anonymize,
		UseEmbeddings:   cfg.UseEmbeddings,
		Dictionary:      dictionary,
		Embedder:        embedder,
		Relevance:       relevance,
	})
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	// 6. Emit
	if rankOutput != "" {
		return writeResultJSON(result, rankOutput)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRankedCandidates(result.Ranked)
	printer.PrintFairnessReport(&result.Fairness)
	printer.PrintAuditEntry(&result.Audit)
	return nil
}

// writeResultJSON writes the full ranking result as indented JSON.
func writeResultJSON(result *ranking.Result, path string) error {
	jsonOutput, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write result to output file %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ranked %d candidates to %s\n", len(result.Ranked), path)
	return nil
}
