package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// JobInfo holds the job titles found in a text and the maximum years of
// experience claimed, or nil when no experience statement was found.
type JobInfo struct {
	JobTitles         []string
	YearsOfExperience *int
}

var (
	// whitespaceRun collapses whitespace runs after separator folding.
	whitespaceRun = regexp.MustCompile(`\s+`)

	// yearsOfExperience matches statements like "5+ years of experience"
	// or "3 yrs experience" anywhere in the raw text.
	yearsOfExperience = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years|yrs)\s+(?:of\s+)?experience`)

	separatorFolder = strings.NewReplacer(
		"_", " ", "/", " ", "-", " ",
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
	)
)

// normalizeForMatch prepares raw text for alias matching: lower-case,
// unify quote variants, treat hyphens, underscores and slashes as spaces
// (so "scikit-learn" and "scikit learn" are the same), collapse whitespace.
func normalizeForMatch(text string) string {
	lowered := strings.ToLower(text)
	lowered = separatorFolder.Replace(lowered)
	return whitespaceRun.ReplaceAllString(lowered, " ")
}

// Skills returns the canonical hard skill names whose aliases appear in the
// text as whole words. The result is deduplicated and sorted. Extraction
// never fails: unmatched text yields an empty set.
func (d *Dictionary) Skills(text string) []string {
	return matchAliases(d.skills, normalizeForMatch(text))
}

// SoftSkills returns the canonical soft skill names found in the text,
// deduplicated and sorted.
func (d *Dictionary) SoftSkills(text string) []string {
	return matchAliases(d.softSkills, normalizeForMatch(text))
}

// EducationCerts tests each education and certification pattern against the
// raw text independently, returning the matched label sets sorted.
func (d *Dictionary) EducationCerts(text string) (education, certifications []string) {
	return matchLabels(d.education, text), matchLabels(d.certifications, text)
}

// Info extracts job titles and years of experience from the raw text.
// Titles are matched as whole space-padded phrases to avoid partial-word
// hits. When several experience statements appear, the maximum wins:
// resumes often understate early experience elsewhere in the document.
func (d *Dictionary) Info(text string) JobInfo {
	padded := " " + normalizeForMatch(text) + " "

	titles := make([]string, 0)
	for _, title := range d.jobTitles {
		if strings.Contains(padded, " "+title+" ") {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)

	info := JobInfo{JobTitles: titles}
	for _, m := range yearsOfExperience.FindAllStringSubmatch(text, -1) {
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if info.YearsOfExperience == nil || years > *info.YearsOfExperience {
			value := years
			info.YearsOfExperience = &value
		}
	}
	return info
}

// matchAliases collects the canonical names whose alias pattern hits the
// pre-normalized text.
func matchAliases(entries []aliasEntry, normalized string) []string {
	hits := make([]string, 0)
	for _, entry := range entries {
		if entry.re.MatchString(normalized) {
			hits = append(hits, entry.canonical)
		}
	}
	sort.Strings(hits)
	return hits
}

// matchLabels collects the labels whose pattern hits the raw text.
func matchLabels(entries []labelEntry, text string) []string {
	hits := make([]string, 0)
	for _, entry := range entries {
		if entry.re.MatchString(text) {
			hits = append(hits, entry.label)
		}
	}
	sort.Strings(hits)
	return hits
}
