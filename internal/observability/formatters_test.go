package observability

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kaushik1064/resume-build/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.PersonalProfile{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED PROFILE")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane@example.com")
}

func TestPrintProfile_ZeroProfilePrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.PersonalProfile{})
	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintDomainVerdicts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jobs := []types.JobPosting{
		types.NewJobPosting("CMO", "Acme", "marketing", ""),
	}
	verdicts := []types.DomainVerdict{
		{
			JobRef:           jobs[0].Ref,
			Level:            types.Incompatible,
			MismatchDetected: true,
			ResumeDomain:     "backend",
			JobDomain:        "marketing",
		},
	}

	p.PrintDomainVerdicts(jobs, verdicts)

	out := buf.String()
	assert.Contains(t, out, "DOMAIN COMPATIBILITY")
	assert.Contains(t, out, "Acme - CMO")
	assert.Contains(t, out, "incompatible")
}

func TestPrintGapReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGapReport(&types.SectionGapReport{
		MissingRequired:   []types.SectionName{types.SectionEducation},
		EnhanceCandidates: []types.SectionName{types.SectionSkills},
	})

	out := buf.String()
	assert.Contains(t, out, "SECTION GAP REPORT")
	assert.Contains(t, out, "education")
	assert.Contains(t, out, "skills")
}

func TestPrintGapReport_AllPresent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGapReport(&types.SectionGapReport{})

	assert.Contains(t, buf.String(), "All standard sections present")
}

func TestPrintArtifacts_MixedResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintArtifacts([]types.CompiledArtifact{
		{
			JobRef:   uuid.New(),
			State:    types.StateSucceeded,
			Filename: "resume_1_Acme_Engineer.pdf",
		},
		{
			JobRef:      uuid.New(),
			Company:     "Initech",
			Role:        "Analyst",
			State:       types.StateFailed,
			FailureKind: types.FailCompile,
			ErrorDetail: "compilation failed",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "RESULTS: 1/2 SUCCEEDED")
	assert.Contains(t, out, "resume_1_Acme_Engineer.pdf")
	assert.Contains(t, out, "Initech")
	assert.Contains(t, out, "compile")
}

func TestPrintArtifacts_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintArtifacts(nil)

	assert.Contains(t, buf.String(), "NO JOBS PROCESSED")
}
