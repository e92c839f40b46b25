// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/kaushik1064/resume-build/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs the extracted candidate profile.
func (p *Printer) PrintProfile(profile *types.PersonalProfile) {
	if profile == nil || profile.IsZero() {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.FullName))
	if profile.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Email))
	}
	if profile.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", profile.Phone))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	}
	for _, link := range profile.Links {
		sb.WriteString(fmt.Sprintf("Link:     %s\n", link.URL))
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDomainVerdicts outputs one compatibility line per job.
func (p *Printer) PrintDomainVerdicts(jobs []types.JobPosting, verdicts []types.DomainVerdict) {
	if len(verdicts) == 0 {
		return
	}

	var sb strings.Builder
	for i, v := range verdicts {
		name := "job"
		if i < len(jobs) {
			name = jobs[i].DisplayName()
		}
		if len(name) > 35 {
			name = name[:32] + "..."
		}

		marker := "✓"
		if v.MismatchDetected {
			marker = "⚠"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, name))
		sb.WriteString(fmt.Sprintf("  %s", v.Level))
		if v.ResumeDomain != "" && v.JobDomain != "" {
			sb.WriteString(fmt.Sprintf(" (%s vs %s)", v.ResumeDomain, v.JobDomain))
		}
		sb.WriteString("\n")
		if i < len(verdicts)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DOMAIN COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGapReport outputs the missing and enhanceable sections.
func (p *Printer) PrintGapReport(report *types.SectionGapReport) {
	if report == nil {
		return
	}

	var sb strings.Builder

	if len(report.MissingRequired) > 0 {
		sb.WriteString("Missing required sections:\n")
		for _, s := range report.MissingRequired {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", s))
		}
		sb.WriteString("\n")
	}

	if len(report.MissingOptional) > 0 {
		sb.WriteString("Missing optional sections:\n")
		count := min(len(report.MissingOptional), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.MissingOptional[i]))
		}
		if len(report.MissingOptional) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.MissingOptional)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(report.EnhanceCandidates) > 0 {
		sb.WriteString("Sections to enhance:\n")
		for _, s := range report.EnhanceCandidates {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("All standard sections present")
	}

	p.printBox("SECTION GAP REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifacts outputs the terminal state of every job.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintArtifacts(artifacts []types.CompiledArtifact) {
	if len(artifacts) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO JOBS PROCESSED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	succeeded := 0
	var sb strings.Builder
	for i := range artifacts {
		a := &artifacts[i]
		if a.Succeeded() {
			succeeded++
			sb.WriteString(fmt.Sprintf("✅ %s\n", a.Filename))
		} else {
			detail := a.ErrorDetail
			if len(detail) > 45 {
				detail = detail[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ %s - %s (%s)\n", a.Company, a.Role, a.FailureKind))
			if detail != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", detail))
			}
		}
		if i < len(artifacts)-1 {
			sb.WriteString("\n")
		}
	}

	title := fmt.Sprintf("RESULTS: %d/%d SUCCEEDED", succeeded, len(artifacts))
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
