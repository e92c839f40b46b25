// Package types provides type definitions for structured data used throughout the tailoring pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// CompatibilityLevel grades how well the resume's domain matches a job's domain
type CompatibilityLevel string

// Compatibility levels reported by the domain analyzer
const (
	Compatible          CompatibilityLevel = "compatible"
	PartiallyCompatible CompatibilityLevel = "partially_compatible"
	Incompatible        CompatibilityLevel = "incompatible"
)

// DomainVerdict is the domain analyzer's read-only result for one job.
// A verdict is produced once per job and never modified afterward.
type DomainVerdict struct {
	JobRef           uuid.UUID          `json:"job_ref"`
	Level            CompatibilityLevel `json:"level"`
	MismatchDetected bool               `json:"mismatch_detected"`
	ResumeDomain     string             `json:"resume_domain,omitempty"`
	JobDomain        string             `json:"job_domain,omitempty"`
	Rationale        string             `json:"rationale,omitempty"`
}

// SectionName identifies a standard resume section
type SectionName string

// Standard resume sections recognized by the gap analyzer
const (
	SectionContact        SectionName = "contact"
	SectionSkills         SectionName = "skills"
	SectionExperience     SectionName = "experience"
	SectionEducation      SectionName = "education"
	SectionProjects       SectionName = "projects"
	SectionCertifications SectionName = "certifications"
	SectionAwards         SectionName = "awards"
	SectionPublications   SectionName = "publications"
	SectionLanguages      SectionName = "languages"
)

// RequiredSections lists sections every resume is expected to carry.
var RequiredSections = []SectionName{
	SectionContact, SectionSkills, SectionExperience, SectionEducation, SectionProjects,
}

// OptionalSections lists sections that strengthen a resume but are not expected.
var OptionalSections = []SectionName{
	SectionCertifications, SectionAwards, SectionPublications, SectionLanguages,
}

// SectionGapReport describes which sections are absent from the resume and
// which present sections are candidates for enhancement. It is computed once
// per session against the whole resume and shared read-only across jobs.
type SectionGapReport struct {
	MissingRequired   []SectionName `json:"missing_required"`
	MissingOptional   []SectionName `json:"missing_optional"`
	EnhanceCandidates []SectionName `json:"enhance_candidates"`
}

// Missing returns all absent sections, required first.
func (r *SectionGapReport) Missing() []SectionName {
	out := make([]SectionName, 0, len(r.MissingRequired)+len(r.MissingOptional))
	out = append(out, r.MissingRequired...)
	out = append(out, r.MissingOptional...)
	return out
}

// IsMissing reports whether the named section is absent from the resume.
func (r *SectionGapReport) IsMissing(name SectionName) bool {
	for _, s := range r.MissingRequired {
		if s == name {
			return true
		}
	}
	for _, s := range r.MissingOptional {
		if s == name {
			return true
		}
	}
	return false
}
