// Package ranking orchestrates the candidate ranking pipeline: text
// normalization, entity extraction, TF-IDF or embedding based similarity,
// fairness analysis, external relevance blending and the final sort.
package ranking

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/mateo/candidate-ranker/internal/audit"
	"github.com/mateo/candidate-ranker/internal/extract"
	"github.com/mateo/candidate-ranker/internal/fairness"
	"github.com/mateo/candidate-ranker/internal/scoring"
	"github.com/mateo/candidate-ranker/internal/textnorm"
	"github.com/mateo/candidate-ranker/internal/types"
	"github.com/mateo/candidate-ranker/internal/vectorspace"
)

// Final score blend: equal parts external relevance and base similarity.
const (
	relevanceWeight      = 0.5
	baseSimilarityWeight = 0.5
)

// Options configures one ranking run.
type Options struct {
	// RemoveStopwords drops stopwords during normalization.
	RemoveStopwords bool
	// Anonymize selects the anonymized token streams for the displayed
	// ranking. The fairness analysis runs on both variants regardless.
	Anonymize bool
	// UseEmbeddings scores with the embedding collaborator instead of
	// TF-IDF cosine. Requires Embedder; falls back to TF-IDF when the
	// collaborator fails.
	UseEmbeddings bool

	// Dictionary overrides the default entity dictionary.
	Dictionary *extract.Dictionary
	// Embedder is the embedding collaborator; may be nil unless
	// UseEmbeddings is set.
	Embedder scoring.Embedder
	// Relevance is the ML relevance collaborator; nil means "always use
	// base similarity".
	Relevance scoring.RelevanceScorer
	// Logger receives collaborator failure and degradation events.
	Logger *slog.Logger
}

// Result is the fully-annotated output of one ranking run.
type Result struct {
	Ranked   []types.ScoredCandidate `json:"results"`
	Fairness types.FairnessReport    `json:"fairness"`
	Audit    types.AuditEntry        `json:"audit"`
}

// Rank runs the full pipeline for one JD against a candidate set. Input
// candidates are never mutated; all per-run state is local to the call, so
// concurrent runs do not share vector buffers or vocabularies.
func Rank(ctx context.Context, jd string, candidates []types.Candidate, opts Options) (*Result, error) {
	jd = strings.TrimSpace(jd)
	if jd == "" {
		return nil, ErrEmptyJobDescription
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	dict := opts.Dictionary
	if dict == nil {
		dict = extract.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Work on a copy so missing ids can be assigned without touching the
	// caller's records.
	cands := make([]types.Candidate, len(candidates))
	copy(cands, candidates)
	for i := range cands {
		if cands[i].ID == "" {
			cands[i].ID = uuid.New().String()
		}
	}

	// Token streams, raw and anonymized, for the JD and every candidate.
	jdRawTokens := textnorm.Normalize(jd, opts.RemoveStopwords)
	jdAnonTokens := textnorm.Anonymize(jdRawTokens)

	candRawTokens := make([][]string, len(cands))
	candAnonTokens := make([][]string, len(cands))
	for i, c := range cands {
		candRawTokens[i] = textnorm.Normalize(c.ResumeText, opts.RemoveStopwords)
		candAnonTokens[i] = textnorm.Anonymize(candRawTokens[i])
	}

	// Entities come from the raw text: extraction needs the multi-word
	// phrases and punctuation that normalization destroys.
	jdHardSkills := dict.Skills(jd)
	jdSoftSkills := dict.SoftSkills(jd)

	entities := make([]types.EntityProfile, len(cands))
	for i, c := range cands {
		education, certifications := dict.EducationCerts(c.ResumeText)
		info := dict.Info(c.ResumeText)
		entities[i] = types.EntityProfile{
			HardSkills:        dict.Skills(c.ResumeText),
			SoftSkills:        dict.SoftSkills(c.ResumeText),
			Education:         education,
			Certifications:    certifications,
			JobTitles:         info.JobTitles,
			YearsOfExperience: info.YearsOfExperience,
		}
	}

	// Fairness always runs in TF-IDF space, independent of display mode.
	report, err := fairness.Analyze(jdRawTokens, jdAnonTokens, candRawTokens, candAnonTokens, cands)
	if err != nil {
		logger.Warn("fairness analysis failed, continuing without fairness data", "error", err)
		report = fairness.Unavailable("", len(cands))
	}

	// Active-mode base similarity.
	activeJD := jdRawTokens
	activeCands := candRawTokens
	if opts.Anonymize {
		activeJD = jdAnonTokens
		activeCands = candAnonTokens
	}

	baseScores, termWeights, usedEmbeddings := baseSimilarity(ctx, logger, opts, activeJD, activeCands)

	report.ModeUsed = modeLabel(usedEmbeddings, opts.Anonymize)

	// Blend with the external relevance score; any collaborator failure
	// degrades to the base similarity for that candidate.
	ranked := make([]types.ScoredCandidate, len(cands))
	for i, c := range cands {
		base := baseScores[i]

		secondary := 0.0
		if usedEmbeddings {
			secondary = base
		}
		years := 0
		if entities[i].YearsOfExperience != nil {
			years = *entities[i].YearsOfExperience
		}

		relevance := base
		if opts.Relevance != nil {
			score, err := opts.Relevance.Score(ctx, scoring.Features{
				BaseSimilarity:      base,
				SecondarySimilarity: secondary,
				HardSkillCount:      len(entities[i].HardSkills),
				SoftSkillCount:      len(entities[i].SoftSkills),
				YearsOfExperience:   years,
			})
			if err != nil {
				logger.Warn("relevance scorer failed, using base similarity",
					"candidate", c.ID, "error", err)
			} else {
				relevance = score
			}
		}

		name := c.Name
		if name == "" {
			name = "Unnamed"
		}

		ranked[i] = types.ScoredCandidate{
			ID:                c.ID,
			Name:              name,
			Email:             c.Email,
			FinalScore:        clamp01(relevanceWeight*relevance + baseSimilarityWeight*base),
			BaseScore:         base,
			TokenCount:        len(activeCands[i]),
			Entities:          entities[i],
			MissingHardSkills: setDifference(jdHardSkills, entities[i].HardSkills),
			MissingSoftSkills: setDifference(jdSoftSkills, entities[i].SoftSkills),
			TermWeights:       termWeights[i],
		}
	}

	// Stable sort keeps input order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	entry := audit.NewEntry(len(jd), ranked, *report,
		opts.RemoveStopwords, opts.Anonymize, opts.UseEmbeddings)

	return &Result{Ranked: ranked, Fairness: *report, Audit: entry}, nil
}

// baseSimilarity computes the active-mode base score per candidate. In
// embedding mode the whole batch is embedded in one collaborator call, JD
// first; on collaborator failure the run falls back to TF-IDF so it always
// completes. TF-IDF mode also produces the per-term weight breakdown;
// embedding mode leaves it empty because that space is opaque.
func baseSimilarity(ctx context.Context, logger *slog.Logger, opts Options, jdTokens []string, candTokens [][]string) (scores []float64, weights [][]types.TermWeight, usedEmbeddings bool) {
	weights = make([][]types.TermWeight, len(candTokens))

	if opts.UseEmbeddings && opts.Embedder != nil {
		texts := make([]string, 0, len(candTokens)+1)
		texts = append(texts, strings.Join(jdTokens, " "))
		for _, tokens := range candTokens {
			texts = append(texts, strings.Join(tokens, " "))
		}

		vectors, err := opts.Embedder.Embed(ctx, texts)
		if err != nil {
			logger.Warn("embedding collaborator failed, falling back to TF-IDF scoring", "error", err)
		} else {
			scores = make([]float64, len(candTokens))
			for i := range candTokens {
				scores[i] = vectorspace.DotNormalized(vectors[0], vectors[i+1])
			}
			return scores, weights, true
		}
	}

	// TF-IDF: one shared space over the JD and every candidate document.
	documents := make([]map[string]int, 0, len(candTokens)+1)
	jdTF := vectorspace.TermFrequency(jdTokens)
	documents = append(documents, jdTF)

	candTFs := make([]map[string]int, len(candTokens))
	for i, tokens := range candTokens {
		candTFs[i] = vectorspace.TermFrequency(tokens)
		documents = append(documents, candTFs[i])
	}

	space := vectorspace.BuildSpace(documents)
	jdVector := space.Vectorize(jdTF)

	scores = make([]float64, len(candTokens))
	for i, tf := range candTFs {
		vector := space.Vectorize(tf)
		scores[i] = vectorspace.Cosine(jdVector, vector)
		weights[i] = termBreakdown(space, vector)
	}
	return scores, weights, false
}

// termBreakdown lists a vector's non-zero terms sorted by weight descending.
func termBreakdown(space *vectorspace.Space, vector []float64) []types.TermWeight {
	breakdown := make([]types.TermWeight, 0)
	for i, term := range space.Vocabulary {
		if vector[i] > 0 {
			breakdown = append(breakdown, types.TermWeight{Term: term, Weight: vector[i]})
		}
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Weight > breakdown[j].Weight
	})
	return breakdown
}

// setDifference returns the members of want absent from have, preserving
// want's (sorted) order.
func setDifference(want, have []string) []string {
	haveSet := make(map[string]bool, len(have))
	for _, s := range have {
		haveSet[s] = true
	}
	missing := make([]string, 0)
	for _, s := range want {
		if !haveSet[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

// modeLabel names the scoring mode that produced the displayed ranking.
func modeLabel(usedEmbeddings, anonymized bool) string {
	mode := "tfidf"
	if usedEmbeddings {
		mode = "embeddings"
	}
	if anonymized {
		return mode + "+anonymized"
	}
	return mode + "+raw"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
