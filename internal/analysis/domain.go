// Package analysis holds the two pre-generation analyses: per-job domain
// compatibility and the session-wide section gap report.
package analysis

import (
	"context"
	"encoding/json"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/kaushik1064/resume-build/internal/gateway"
	"github.com/kaushik1064/resume-build/internal/types"
)

// maxAnalysisChars caps how much of each text is sent for domain analysis;
// the opening of a resume or posting is enough to identify its domain.
const maxAnalysisChars = 2000

// AnalyzeDomain asks the generation service whether the candidate's domain
// matches one job's domain. The verdict is a pure read of the mismatch state;
// it never changes based on later reconciliation decisions. Service failures
// degrade to a compatible verdict so a flaky analyzer cannot block a session.
func AnalyzeDomain(ctx context.Context, gen gateway.Generator, resumeText string, job types.JobPosting) (*types.DomainVerdict, error) {
	raw, err := gen.Generate(ctx, gateway.AnalyzeDomain, gateway.Input{
		ResumeText: truncate(resumeText, maxAnalysisChars),
		JobTitle:   job.Title,
		JobText:    truncate(job.Description, maxAnalysisChars),
	})
	if err != nil {
		var verr *gateway.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return &types.DomainVerdict{JobRef: job.Ref, Level: types.Compatible}, nil
	}

	var payload struct {
		Compatibility string `json:"compatibility"`
		ResumeDomain  string `json:"resume_domain"`
		JobDomain     string `json:"job_domain"`
		Rationale     string `json:"rationale"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &types.DomainVerdict{JobRef: job.Ref, Level: types.Compatible}, nil
	}

	verdict := &types.DomainVerdict{
		JobRef:       job.Ref,
		ResumeDomain: payload.ResumeDomain,
		JobDomain:    payload.JobDomain,
		Rationale:    payload.Rationale,
	}

	switch types.CompatibilityLevel(payload.Compatibility) {
	case types.Incompatible:
		verdict.Level = types.Incompatible
		verdict.MismatchDetected = true
	case types.PartiallyCompatible:
		verdict.Level = types.PartiallyCompatible
		verdict.MismatchDetected = true
	default:
		verdict.Level = types.Compatible
	}

	return verdict, nil
}

// AnalyzeDomains evaluates every job independently and in parallel, returning
// one verdict per job in input order plus the session-level mismatch flag.
func AnalyzeDomains(ctx context.Context, gen gateway.Generator, resumeText string, jobs []types.JobPosting) ([]types.DomainVerdict, bool, error) {
	verdicts := make([]types.DomainVerdict, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			v, err := AnalyzeDomain(gCtx, gen, resumeText, job)
			if err != nil {
				return err
			}
			verdicts[i] = *v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	anyMismatch := false
	for _, v := range verdicts {
		if v.MismatchDetected {
			anyMismatch = true
			break
		}
	}

	return verdicts, anyMismatch, nil
}

// truncate cuts s at the nearest rune boundary not past limit bytes.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
