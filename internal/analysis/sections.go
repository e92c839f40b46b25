package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaushik1064/resume-build/internal/gateway"
	"github.com/kaushik1064/resume-build/internal/types"
)

// sectionKeywords backs the deterministic fallback scan. Any keyword hit
// marks the section as present.
var sectionKeywords = map[types.SectionName][]string{
	types.SectionContact:        {"contact", "phone", "email", "@", "linkedin", "github"},
	types.SectionSkills:         {"skills", "technical skills", "competencies", "proficiencies"},
	types.SectionExperience:     {"experience", "work history", "employment", "professional experience"},
	types.SectionEducation:      {"education", "academic", "degree", "university", "college"},
	types.SectionProjects:       {"projects", "portfolio", "work samples"},
	types.SectionCertifications: {"certification", "certified", "license"},
	types.SectionAwards:         {"awards", "honors", "achievements", "recognition"},
	types.SectionPublications:   {"publications", "papers", "research", "presented"},
	types.SectionLanguages:      {"languages", "fluent", "proficient"},
}

// enhanceableSections are the present sections worth enhancing toward a job.
var enhanceableSections = []types.SectionName{
	types.SectionSkills, types.SectionExperience, types.SectionProjects,
}

// AnalyzeSections determines which standard resume sections are missing or
// weak. It runs a single generation call over the full resume, falling back
// to a keyword scan when the response is unusable, and is computed once per
// session; the report is shared read-only by every job branch.
func AnalyzeSections(ctx context.Context, gen gateway.Generator, resumeText string) (*types.SectionGapReport, error) {
	raw, err := gen.Generate(ctx, gateway.AnalyzeSections, gateway.Input{ResumeText: resumeText})
	if err != nil {
		var verr *gateway.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return ScanSections(resumeText), nil
	}

	var payload struct {
		Present []string `json:"present"`
		Missing []string `json:"missing"`
		Enhance []string `json:"enhance"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ScanSections(resumeText), nil
	}

	present := toKnownSections(payload.Present)
	if len(present) == 0 {
		// A resume with no recognizable sections means the model answered
		// off-taxonomy; the keyword scan is more trustworthy.
		return ScanSections(resumeText), nil
	}

	return buildReport(present, toKnownSections(payload.Enhance)), nil
}

// ScanSections is the deterministic keyword-based section scan used as the
// fallback path. Same resume text always yields the same report.
func ScanSections(resumeText string) *types.SectionGapReport {
	lower := strings.ToLower(resumeText)

	present := make(map[types.SectionName]bool)
	for section, keywords := range sectionKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				present[section] = true
				break
			}
		}
	}

	return buildReport(present, nil)
}

// buildReport derives the gap report from the present-section set. When no
// explicit enhance list is given, present enhanceable sections are used.
func buildReport(present map[types.SectionName]bool, enhance map[types.SectionName]bool) *types.SectionGapReport {
	report := &types.SectionGapReport{
		MissingRequired:   []types.SectionName{},
		MissingOptional:   []types.SectionName{},
		EnhanceCandidates: []types.SectionName{},
	}

	for _, s := range types.RequiredSections {
		if !present[s] {
			report.MissingRequired = append(report.MissingRequired, s)
		}
	}
	for _, s := range types.OptionalSections {
		if !present[s] {
			report.MissingOptional = append(report.MissingOptional, s)
		}
	}

	for _, s := range enhanceableSections {
		if enhance != nil {
			if enhance[s] {
				report.EnhanceCandidates = append(report.EnhanceCandidates, s)
			}
		} else if present[s] {
			report.EnhanceCandidates = append(report.EnhanceCandidates, s)
		}
	}

	return report
}

// toKnownSections filters arbitrary model output down to the closed taxonomy.
func toKnownSections(names []string) map[types.SectionName]bool {
	out := make(map[types.SectionName]bool, len(names))
	for _, n := range names {
		s := types.SectionName(strings.ToLower(strings.TrimSpace(n)))
		if _, known := sectionKeywords[s]; known {
			out[s] = true
		}
	}
	return out
}
