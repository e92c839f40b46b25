package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaushik1064/resume-build/internal/gateway"
	"github.com/kaushik1064/resume-build/internal/types"
)

const fullResume = `Jane Doe
jane@example.com | 555-0100 | github.com/janedoe

## Skills
Go, Python, PostgreSQL

## Experience
Acme Corp, Senior Engineer

## Education
State University, BS Computer Science

## Projects
cache-proxy: read-through cache in Go`

func TestScanSections_FullResume(t *testing.T) {
	report := ScanSections(fullResume)

	assert.Empty(t, report.MissingRequired)
	assert.ElementsMatch(t, []types.SectionName{
		types.SectionSkills, types.SectionExperience, types.SectionProjects,
	}, report.EnhanceCandidates)
}

func TestScanSections_MissingSections(t *testing.T) {
	report := ScanSections("Jane Doe\njane@example.com\n\n## Skills\nGo, Python")

	assert.Contains(t, report.MissingRequired, types.SectionExperience)
	assert.Contains(t, report.MissingRequired, types.SectionProjects)
	assert.NotContains(t, report.MissingRequired, types.SectionSkills)
	assert.NotContains(t, report.MissingRequired, types.SectionContact)
}

func TestScanSections_Deterministic(t *testing.T) {
	first := ScanSections(fullResume)
	second := ScanSections(fullResume)
	assert.Equal(t, first, second)
}

func TestScanSections_ReportsOptionalGaps(t *testing.T) {
	report := ScanSections(fullResume)

	assert.Contains(t, report.MissingOptional, types.SectionCertifications)
	assert.Contains(t, report.Missing(), types.SectionCertifications)
}

func TestAnalyzeSections_UsesModelReport(t *testing.T) {
	gen := &stubGenerator{responses: map[gateway.PromptKind]string{
		gateway.AnalyzeSections: `{
			"present": ["contact", "skills", "experience", "education", "projects"],
			"missing": ["certifications"],
			"enhance": ["skills"]
		}`,
	}}

	report, err := AnalyzeSections(context.Background(), gen, fullResume)
	require.NoError(t, err)

	assert.Empty(t, report.MissingRequired)
	assert.Equal(t, []types.SectionName{types.SectionSkills}, report.EnhanceCandidates)
}

func TestAnalyzeSections_ServiceFailureFallsBackToScan(t *testing.T) {
	gen := &stubGenerator{errs: map[gateway.PromptKind]error{
		gateway.AnalyzeSections: &gateway.ServiceUnavailableError{Attempts: 3},
	}}

	report, err := AnalyzeSections(context.Background(), gen, fullResume)
	require.NoError(t, err)

	assert.Equal(t, ScanSections(fullResume), report)
}

func TestAnalyzeSections_OffTaxonomyResponseFallsBackToScan(t *testing.T) {
	gen := &stubGenerator{responses: map[gateway.PromptKind]string{
		gateway.AnalyzeSections: `{"present": ["header", "sidebar"], "missing": []}`,
	}}

	report, err := AnalyzeSections(context.Background(), gen, fullResume)
	require.NoError(t, err)

	assert.Equal(t, ScanSections(fullResume), report)
}

func TestAnalyzeSections_ValidationErrorPropagates(t *testing.T) {
	gen := &stubGenerator{errs: map[gateway.PromptKind]error{
		gateway.AnalyzeSections: &gateway.ValidationError{Field: "resume_text"},
	}}

	_, err := AnalyzeSections(context.Background(), gen, "")
	require.Error(t, err)

	var verr *gateway.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestToKnownSections_FiltersAndNormalizes(t *testing.T) {
	out := toKnownSections([]string{" Skills ", "EXPERIENCE", "sidebar", ""})

	assert.True(t, out[types.SectionSkills])
	assert.True(t, out[types.SectionExperience])
	assert.Len(t, out, 2)
}
