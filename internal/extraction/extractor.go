// Package extraction pulls structured personal and project records out of
// free-form resume text via the gateway. It runs once per session,
// independent of job count.
package extraction

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/kaushik1064/resume-build/internal/gateway"
	"github.com/kaushik1064/resume-build/internal/types"
)

// ExtractPersonal extracts the candidate's contact details from resume text.
// Extraction failures degrade to a zero-valued profile rather than failing
// the session; only input validation errors propagate.
func ExtractPersonal(ctx context.Context, gen gateway.Generator, resumeText string) (*types.PersonalProfile, error) {
	raw, err := gen.Generate(ctx, gateway.ExtractPersonal, gateway.Input{ResumeText: resumeText})
	if err != nil {
		return degradePersonal(err)
	}

	var profile types.PersonalProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return &types.PersonalProfile{}, nil
	}

	return &profile, nil
}

// ExtractProjects extracts the candidate's project records from resume text.
// Failures degrade to an empty list; only input validation errors propagate.
func ExtractProjects(ctx context.Context, gen gateway.Generator, resumeText string) ([]types.ProjectRecord, error) {
	raw, err := gen.Generate(ctx, gateway.ExtractProjects, gateway.Input{ResumeText: resumeText})
	if err != nil {
		return degradeProjects(err)
	}

	var payload struct {
		Projects []types.ProjectRecord `json:"projects"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return []types.ProjectRecord{}, nil
	}
	if payload.Projects == nil {
		payload.Projects = []types.ProjectRecord{}
	}

	return payload.Projects, nil
}

func degradePersonal(err error) (*types.PersonalProfile, error) {
	var verr *gateway.ValidationError
	if errors.As(err, &verr) {
		return nil, err
	}
	return &types.PersonalProfile{}, nil
}

func degradeProjects(err error) ([]types.ProjectRecord, error) {
	var verr *gateway.ValidationError
	if errors.As(err, &verr) {
		return nil, err
	}
	return []types.ProjectRecord{}, nil
}
