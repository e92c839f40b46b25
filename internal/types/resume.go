// Package types provides type definitions for structured data used throughout the tailoring pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeSource is the normalized resume text for one session.
// It is created once from uploaded content and never mutated afterward.
type ResumeSource struct {
	Text     string           `json:"text"`
	Profile  *PersonalProfile `json:"profile,omitempty"`
	Projects []ProjectRecord  `json:"projects,omitempty"`
}

// PersonalProfile represents the candidate's contact details extracted from the resume.
// Fields may be empty when extraction partially fails; empty fields never fail the pipeline.
type PersonalProfile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location,omitempty"`
	Links    []Link `json:"links,omitempty"`
}

// Link is a labeled URL from the resume header (LinkedIn, GitHub, portfolio).
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// IsZero reports whether no field of the profile was extracted.
func (p *PersonalProfile) IsZero() bool {
	if p == nil {
		return true
	}
	return p.FullName == "" && p.Email == "" && p.Phone == "" &&
		p.Location == "" && len(p.Links) == 0
}

// ProjectRecord represents one project extracted from the resume
type ProjectRecord struct {
	Name             string   `json:"name"`
	DateRange        string   `json:"date_range,omitempty"`
	DescriptionLines []string `json:"description_lines"`
}
