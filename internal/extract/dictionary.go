// Package extract provides dictionary and regex based entity recognition
// over raw resume and job description text: hard skills, soft skills,
// education levels, certifications, job titles and years of experience.
//
// Dictionaries are data, not code. The default tables are embedded JSON;
// replacement tables can be loaded from disk and are validated against a
// JSON Schema before use, so recruiters can version and swap them without
// touching pipeline logic. A built Dictionary is immutable and safe for
// concurrent readers.
package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	_ "embed"
)

//go:embed dictionary.json
var defaultDictionaryJSON []byte

//go:embed dictionary_schema.json
var dictionarySchemaJSON []byte

// aliasEntry pairs a canonical entity name with the compiled pattern that
// matches any of its textual aliases as whole words.
type aliasEntry struct {
	canonical string
	re        *regexp.Regexp
}

// labelEntry pairs a display label with an independent case-insensitive pattern.
type labelEntry struct {
	label string
	re    *regexp.Regexp
}

// Dictionary holds the compiled entity tables for one extraction configuration.
type Dictionary struct {
	skills         []aliasEntry
	softSkills     []aliasEntry
	education      []labelEntry
	certifications []labelEntry
	jobTitles      []string
}

// labelPattern mirrors one {label, pattern} object in the dictionary file.
type labelPattern struct {
	Label   string `json:"label"`
	Pattern string `json:"pattern"`
}

// dictionaryFile mirrors the on-disk dictionary JSON layout.
type dictionaryFile struct {
	Skills         map[string][]string `json:"skills"`
	SoftSkills     map[string][]string `json:"soft_skills"`
	Education      []labelPattern      `json:"education"`
	Certifications []labelPattern      `json:"certifications"`
	JobTitles      []string            `json:"job_titles"`
}

var (
	defaultDict     *Dictionary
	defaultDictOnce sync.Once
)

// Default returns the dictionary built from the embedded tables.
// The result is shared; callers must not assume exclusive ownership.
func Default() *Dictionary {
	defaultDictOnce.Do(func() {
		dict, err := build(defaultDictionaryJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded dictionary is invalid: %v", err))
		}
		defaultDict = dict
	})
	return defaultDict
}

// Load reads a dictionary JSON file, validates it against the embedded
// schema and compiles it. Returns an error if the file cannot be read,
// fails schema validation, or contains an invalid regex pattern.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}

	if err := validateDictionary(data); err != nil {
		return nil, fmt.Errorf("dictionary file %s: %w", path, err)
	}

	dict, err := build(data)
	if err != nil {
		return nil, fmt.Errorf("dictionary file %s: %w", path, err)
	}
	return dict, nil
}

// validateDictionary checks raw dictionary JSON against the embedded schema.
func validateDictionary(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(dictionarySchemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString("dictionary does not match schema:")
		for _, desc := range result.Errors() {
			sb.WriteString(fmt.Sprintf("\n  %s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("%s", sb.String())
	}
	return nil
}

// build parses and compiles a dictionary from raw JSON.
func build(data []byte) (*Dictionary, error) {
	var file dictionaryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary JSON: %w", err)
	}

	skills, err := compileAliases(file.Skills)
	if err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}
	softSkills, err := compileAliases(file.SoftSkills)
	if err != nil {
		return nil, fmt.Errorf("soft_skills: %w", err)
	}
	education, err := compileLabels(file.Education)
	if err != nil {
		return nil, fmt.Errorf("education: %w", err)
	}
	certifications, err := compileLabels(file.Certifications)
	if err != nil {
		return nil, fmt.Errorf("certifications: %w", err)
	}

	titles := make([]string, 0, len(file.JobTitles))
	for _, title := range file.JobTitles {
		title = strings.ToLower(strings.TrimSpace(title))
		if title != "" {
			titles = append(titles, title)
		}
	}

	return &Dictionary{
		skills:         skills,
		softSkills:     softSkills,
		education:      education,
		certifications: certifications,
		jobTitles:      titles,
	}, nil
}

// compileAliases turns a canonical-name -> aliases table into an ordered
// list of compiled whole-word matchers. Canonical names are sorted so the
// build is deterministic regardless of map iteration order.
func compileAliases(table map[string][]string) ([]aliasEntry, error) {
	canonicals := make([]string, 0, len(table))
	for canonical := range table {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	entries := make([]aliasEntry, 0, len(canonicals))
	for _, canonical := range canonicals {
		aliases := table[canonical]
		escaped := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			alias = strings.TrimSpace(alias)
			if alias != "" {
				escaped = append(escaped, regexp.QuoteMeta(strings.ToLower(alias)))
			}
		}
		if len(escaped) == 0 {
			continue
		}

		re, err := regexp.Compile(`\b(?:` + strings.Join(escaped, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile aliases for %q: %w", canonical, err)
		}
		entries = append(entries, aliasEntry{canonical: canonical, re: re})
	}
	return entries, nil
}

// compileLabels compiles the independent case-insensitive label patterns.
func compileLabels(patterns []labelPattern) ([]labelEntry, error) {
	entries := make([]labelEntry, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %q: %w", p.Label, err)
		}
		entries = append(entries, labelEntry{label: p.Label, re: re})
	}
	return entries, nil
}
