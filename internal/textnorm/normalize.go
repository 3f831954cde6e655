// Package textnorm provides deterministic text normalization and PII
// anonymization for the ranking pipeline. Both operations are pure: no
// hidden state, no I/O, same output for the same input every time.
package textnorm

import (
	"regexp"
	"strings"
)

const (
	// EmailPlaceholder replaces email-shaped tokens during anonymization.
	EmailPlaceholder = "<email>"
	// NumberPlaceholder replaces long digit runs during anonymization.
	NumberPlaceholder = "<num>"
)

var (
	// disallowed matches every character outside the token allow-list.
	// The allow-list keeps @ . - + so that email-shaped and number-shaped
	// tokens survive normalization intact; anonymization is a separate,
	// explicit step and relies on them being preserved here.
	disallowed = regexp.MustCompile(`[^a-z0-9@.\-+ ]+`)

	emailToken  = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.[a-z]{2,}$`)
	digitsToken = regexp.MustCompile(`^\d{4,}$`)

	quoteReplacer = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
	)
)

// Normalize lower-cases text, unifies curly quote variants, replaces any
// character outside the allow-list with a space, and splits on whitespace.
// When removeStopwords is true, tokens in the fixed stopword set are dropped.
func Normalize(text string, removeStopwords bool) []string {
	lowered := strings.ToLower(text)
	lowered = quoteReplacer.Replace(lowered)
	lowered = disallowed.ReplaceAllString(lowered, " ")

	fields := strings.Fields(lowered)
	if !removeStopwords {
		return fields
	}

	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Anonymize maps email-shaped tokens to a fixed <email> placeholder and
// tokens of four or more consecutive digits to a fixed <num> placeholder.
// All other tokens pass through unchanged. The operation is idempotent:
// neither placeholder matches either pattern, so re-anonymizing an already
// anonymized stream is a no-op.
func Anonymize(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		switch {
		case emailToken.MatchString(tok):
			out[i] = EmailPlaceholder
		case digitsToken.MatchString(tok):
			out[i] = NumberPlaceholder
		default:
			out[i] = tok
		}
	}
	return out
}
