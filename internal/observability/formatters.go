// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mateo/candidate-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the rank command.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRankedCandidates outputs the top ranked candidates with scores,
// matched skills and skill gaps.
func (p *Printer) PrintRankedCandidates(ranked []types.ScoredCandidate) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, c.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.1f%% (base %.1f%%)\n", c.FinalScore*100, c.BaseScore*100))
		if len(c.Entities.HardSkills) > 0 {
			skills := strings.Join(c.Entities.HardSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if len(c.MissingHardSkills) > 0 {
			gaps := strings.Join(c.MissingHardSkills, ", ")
			if len(gaps) > 40 {
				gaps = gaps[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Gaps:   %s\n", gaps))
		}
		if c.Entities.YearsOfExperience != nil {
			sb.WriteString(fmt.Sprintf("    ~%d+ yrs experience\n", *c.Entities.YearsOfExperience))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFairnessReport outputs the anonymization impact summary.
func (p *Printer) PrintFairnessReport(report *types.FairnessReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if !report.Available {
		sb.WriteString(report.Note)
		p.printBox("FAIRNESS", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Mode used:  %s\n", report.ModeUsed))
	sb.WriteString(fmt.Sprintf("Analysed:   %d candidate(s)\n", report.Candidates))
	sb.WriteString(fmt.Sprintf("Avg |dScore|: %.2f pts\n", report.AvgShift*100))
	sb.WriteString(fmt.Sprintf("Max |dScore|: %.2f pts", report.MaxShift*100))
	if report.MaxShiftName != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", report.MaxShiftName))
	}
	sb.WriteString("\n\n")
	sb.WriteString(report.Note)

	p.printBox("FAIRNESS", sb.String())
}

// PrintAuditEntry outputs the audit snapshot of one ranking run.
func (p *Printer) PrintAuditEntry(entry *types.AuditEntry) {
	if entry == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:        %s\n", entry.ID))
	sb.WriteString(fmt.Sprintf("Timestamp:  %s\n", entry.Timestamp.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Candidates: %d   JD chars: %d\n", entry.Candidates, entry.JDLength))
	sb.WriteString(fmt.Sprintf("Toggles:    stopwords=%t anonymize=%t embeddings=%t\n",
		entry.RemoveStopwords, entry.Anonymize, entry.UseEmbeddings))

	if len(entry.Top) > 0 {
		sb.WriteString("\nTop:\n")
		for i, top := range entry.Top {
			sb.WriteString(fmt.Sprintf("  %d. %s (%.1f%%)\n", i+1, top.Name, top.Score*100))
		}
	}

	p.printBox("AUDIT ENTRY", strings.TrimSuffix(sb.String(), "\n"))
}
