package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaushik1064/resume-build/internal/gateway"
	"github.com/kaushik1064/resume-build/internal/types"
)

// stubGenerator returns a canned response or error per prompt kind.
type stubGenerator struct {
	mu        sync.Mutex
	calls     int
	responses map[gateway.PromptKind]string
	errs      map[gateway.PromptKind]error
	lastInput gateway.Input
}

func (s *stubGenerator) Generate(_ context.Context, kind gateway.PromptKind, in gateway.Input) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastInput = in
	if err := s.errs[kind]; err != nil {
		return nil, err
	}
	return json.RawMessage(s.responses[kind]), nil
}

func TestAnalyzeDomain_Incompatible(t *testing.T) {
	gen := &stubGenerator{responses: map[gateway.PromptKind]string{
		gateway.AnalyzeDomain: `{
			"compatibility": "incompatible",
			"resume_domain": "embedded systems",
			"job_domain": "marketing",
			"rationale": "no overlapping skills"
		}`,
	}}
	job := types.NewJobPosting("CMO", "Acme", "lead marketing", "")

	verdict, err := AnalyzeDomain(context.Background(), gen, "firmware resume", job)
	require.NoError(t, err)

	assert.Equal(t, job.Ref, verdict.JobRef)
	assert.Equal(t, types.Incompatible, verdict.Level)
	assert.True(t, verdict.MismatchDetected)
	assert.Equal(t, "embedded systems", verdict.ResumeDomain)
	assert.Equal(t, "marketing", verdict.JobDomain)
	assert.Equal(t, "no overlapping skills", verdict.Rationale)
}

func TestAnalyzeDomain_PartiallyCompatibleIsMismatch(t *testing.T) {
	gen := &stubGenerator{responses: map[gateway.PromptKind]string{
		gateway.AnalyzeDomain: `{"compatibility": "partially_compatible", "rationale": "adjacent fields"}`,
	}}
	job := types.NewJobPosting("Data Engineer", "Acme", "build pipelines", "")

	verdict, err := AnalyzeDomain(context.Background(), gen, "backend resume", job)
	require.NoError(t, err)

	assert.Equal(t, types.PartiallyCompatible, verdict.Level)
	assert.True(t, verdict.MismatchDetected)
}

func TestAnalyzeDomain_Compatible(t *testing.T) {
	gen := &stubGenerator{responses: map[gateway.PromptKind]string{
		gateway.AnalyzeDomain: `{"compatibility": "compatible", "rationale": "same field"}`,
	}}
	job := types.NewJobPosting("Go Developer", "Acme", "write Go services", "")

	verdict, err := AnalyzeDomain(context.Background(), gen, "Go resume", job)
	require.NoError(t, err)

	assert.Equal(t, types.Compatible, verdict.Level)
	assert.False(t, verdict.MismatchDetected)
}

func TestAnalyzeDomain_ServiceFailureDegradesToCompatible(t *testing.T) {
	gen := &stubGenerator{errs: map[gateway.PromptKind]error{
		gateway.AnalyzeDomain: &gateway.ServiceUnavailableError{Attempts: 3},
	}}
	job := types.NewJobPosting("Go Developer", "Acme", "write Go services", "")

	verdict, err := AnalyzeDomain(context.Background(), gen, "Go resume", job)
	require.NoError(t, err)

	assert.Equal(t, types.Compatible, verdict.Level)
	assert.False(t, verdict.MismatchDetected)
}

func TestAnalyzeDomain_ValidationErrorPropagates(t *testing.T) {
	gen := &stubGenerator{errs: map[gateway.PromptKind]error{
		gateway.AnalyzeDomain: &gateway.ValidationError{Field: "resume_text"},
	}}
	job := types.NewJobPosting("Go Developer", "Acme", "write Go services", "")

	_, err := AnalyzeDomain(context.Background(), gen, "", job)
	require.Error(t, err)

	var verr *gateway.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAnalyzeDomain_TruncatesLongInputs(t *testing.T) {
	gen := &stubGenerator{responses: map[gateway.PromptKind]string{
		gateway.AnalyzeDomain: `{"compatibility": "compatible", "rationale": "ok"}`,
	}}
	longResume := strings.Repeat("experience ", 1000)
	job := types.NewJobPosting("Role", "Acme", strings.Repeat("requirement ", 1000), "")

	_, err := AnalyzeDomain(context.Background(), gen, longResume, job)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(gen.lastInput.ResumeText), maxAnalysisChars)
	assert.LessOrEqual(t, len(gen.lastInput.JobText), maxAnalysisChars)
}

func TestAnalyzeDomains_OrderAndAggregateFlag(t *testing.T) {
	gen := &stubGenerator{responses: map[gateway.PromptKind]string{
		gateway.AnalyzeDomain: `{"compatibility": "incompatible", "rationale": "different fields"}`,
	}}
	jobs := []types.JobPosting{
		types.NewJobPosting("Role A", "Alpha", "desc a", ""),
		types.NewJobPosting("Role B", "Beta", "desc b", ""),
		types.NewJobPosting("Role C", "Gamma", "desc c", ""),
	}

	verdicts, anyMismatch, err := AnalyzeDomains(context.Background(), gen, "resume", jobs)
	require.NoError(t, err)

	require.Len(t, verdicts, 3)
	assert.True(t, anyMismatch)
	for i, v := range verdicts {
		assert.Equal(t, jobs[i].Ref, v.JobRef)
	}
}

func TestAnalyzeDomains_NoJobs(t *testing.T) {
	gen := &stubGenerator{}

	verdicts, anyMismatch, err := AnalyzeDomains(context.Background(), gen, "resume", nil)
	require.NoError(t, err)
	assert.Empty(t, verdicts)
	assert.False(t, anyMismatch)
}

func TestTruncate_RuneBoundary(t *testing.T) {
	s := "héllo wörld"
	cut := truncate(s, 3)
	assert.LessOrEqual(t, len(cut), 3)
	for _, r := range cut {
		assert.NotEqual(t, '�', r)
	}
}
