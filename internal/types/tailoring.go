// Package types provides type definitions for structured data used throughout the tailoring pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// SectionPreferences captures the user's add/skip decisions gathered by the
// conversation layer before generation starts.
type SectionPreferences struct {
	AddSections  []SectionName `json:"add_sections,omitempty"`
	SkipSections []SectionName `json:"skip_sections,omitempty"`
}

// WantsSection reports whether the user opted into adding the named section.
func (p *SectionPreferences) WantsSection(name SectionName) bool {
	if p == nil {
		return false
	}
	for _, s := range p.AddSections {
		if s == name {
			return true
		}
	}
	return false
}

// Skips reports whether the user opted out of the named section.
func (p *SectionPreferences) Skips(name SectionName) bool {
	if p == nil {
		return false
	}
	for _, s := range p.SkipSections {
		if s == name {
			return true
		}
	}
	return false
}

// ExperienceEntry is one work experience role in the tailored document
type ExperienceEntry struct {
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	DateRange string   `json:"date_range,omitempty"`
	Bullets   []string `json:"bullets"`
}

// EducationEntry is one degree in the tailored document
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	DateRange   string `json:"date_range,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// SkillCategory groups skills under a heading (e.g. "Languages", "Cloud")
type SkillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// TailoredContent is the generator's sole output for one job. It is consumed
// exactly once by the renderer for that job.
type TailoredContent struct {
	JobRef     uuid.UUID         `json:"job_ref"`
	TargetRole string            `json:"target_role,omitempty"`
	Profile    PersonalProfile   `json:"profile"`
	Summary    string            `json:"summary,omitempty"`
	Projects   []ProjectRecord   `json:"projects"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []SkillCategory   `json:"skills"`
	Education  []EducationEntry  `json:"education"`
}
