// Package tailoring produces one tailored content record per job from the
// normalized resume, the extracted structured data and the user's section
// preferences.
package tailoring

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaushik1064/resume-build/internal/gateway"
	"github.com/kaushik1064/resume-build/internal/prompts"
	"github.com/kaushik1064/resume-build/internal/types"
)

// ReframeStrength tunes how aggressively reconciliation reinterprets project
// and experience framing. The exact aggressiveness is policy, not contract;
// only entity preservation is guaranteed.
type ReframeStrength string

// Reframe strengths accepted by the generator
const (
	StrengthConservative ReframeStrength = "conservative"
	StrengthModerate     ReframeStrength = "moderate"
	StrengthAggressive   ReframeStrength = "aggressive"
)

// Request carries everything the generator needs for one job. Jobs are
// mutually independent; nothing in a request is shared mutable state.
type Request struct {
	Resume          *types.ResumeSource
	Job             types.JobPosting
	Profile         *types.PersonalProfile
	Projects        []types.ProjectRecord
	GapReport       *types.SectionGapReport
	Preferences     *types.SectionPreferences
	ReconcileDomain bool
	Strength        ReframeStrength
}

// Generate produces the tailored content record for one job.
//
// With ReconcileDomain set, the generation call is instructed to reframe
// projects and experience toward the job's domain while preserving factual
// entities. Without it, only the missing sections the user opted into are
// added. When the service responds but the content is unusable, the job
// degrades to minimal content built from already-extracted data instead of
// failing.
func Generate(ctx context.Context, gen gateway.Generator, req Request) (*types.TailoredContent, error) {
	personalJSON, _ := json.Marshal(req.Profile)
	projectsJSON, _ := json.Marshal(req.Projects)

	raw, err := gen.Generate(ctx, gateway.TailorContent, gateway.Input{
		ResumeText:         req.Resume.Text,
		JobTitle:           req.Job.Title,
		Company:            req.Job.Company,
		JobText:            req.Job.Description,
		PersonalJSON:       string(personalJSON),
		ProjectsJSON:       string(projectsJSON),
		PolicyInstructions: policyInstructions(req),
	})
	if err != nil {
		var exErr *gateway.ExtractionError
		if errors.As(err, &exErr) {
			return Fallback(req), nil
		}
		return nil, err
	}

	var content types.TailoredContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return Fallback(req), nil
	}

	content.JobRef = req.Job.Ref
	if content.TargetRole == "" {
		content.TargetRole = req.Job.Title
	}
	// The extracted profile is authoritative; tailored output never gets to
	// rewrite the candidate's identity.
	if req.Profile != nil {
		content.Profile = *req.Profile
	}

	applySkips(&content, req.Preferences)

	return &content, nil
}

// Fallback builds minimal tailored content purely from already-extracted
// structured data, with no generated prose.
func Fallback(req Request) *types.TailoredContent {
	content := &types.TailoredContent{
		JobRef:     req.Job.Ref,
		TargetRole: req.Job.Title,
		Projects:   append([]types.ProjectRecord{}, req.Projects...),
		Experience: []types.ExperienceEntry{},
		Skills:     []types.SkillCategory{},
		Education:  []types.EducationEntry{},
	}
	if req.Profile != nil {
		content.Profile = *req.Profile
	}
	return content
}

// policyInstructions renders the reconcile or additive policy block for the
// generation prompt.
func policyInstructions(req Request) string {
	if req.ReconcileDomain {
		strength := req.Strength
		if strength == "" {
			strength = StrengthModerate
		}
		template := prompts.MustGet("tailoring.json", "policy-reconcile")
		return prompts.Format(template, map[string]string{
			"Strength": string(strength),
		})
	}

	template := prompts.MustGet("tailoring.json", "policy-additive")
	return prompts.Format(template, map[string]string{
		"AddSections":  sectionList(optedSections(req)),
		"SkipSections": sectionList(skippedSections(req.Preferences)),
	})
}

// optedSections returns the missing sections the user opted into adding.
func optedSections(req Request) []types.SectionName {
	if req.GapReport == nil || req.Preferences == nil {
		return nil
	}
	var out []types.SectionName
	for _, s := range req.GapReport.Missing() {
		if req.Preferences.WantsSection(s) {
			out = append(out, s)
		}
	}
	return out
}

func skippedSections(prefs *types.SectionPreferences) []types.SectionName {
	if prefs == nil {
		return nil
	}
	return prefs.SkipSections
}

func sectionList(sections []types.SectionName) string {
	if len(sections) == 0 {
		return "none"
	}
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// applySkips drops sections the user opted out of from the tailored content.
func applySkips(content *types.TailoredContent, prefs *types.SectionPreferences) {
	if prefs == nil {
		return
	}
	if prefs.Skips(types.SectionProjects) {
		content.Projects = []types.ProjectRecord{}
	}
	if prefs.Skips(types.SectionExperience) {
		content.Experience = []types.ExperienceEntry{}
	}
	if prefs.Skips(types.SectionSkills) {
		content.Skills = []types.SkillCategory{}
	}
	if prefs.Skips(types.SectionEducation) {
		content.Education = []types.EducationEntry{}
	}
}
