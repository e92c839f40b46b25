// Package types provides type definitions for structured data used throughout the tailoring pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// JobPosting represents one target job. Postings are independent of each
// other; no state is shared between them during processing.
type JobPosting struct {
	Ref         uuid.UUID `json:"ref"`
	Title       string    `json:"title"`
	Company     string    `json:"company,omitempty"`
	Description string    `json:"description" validate:"required"`
	SourceURL   string    `json:"source_url,omitempty" validate:"omitempty,url"`
}

// NewJobPosting creates a posting with a fresh reference ID.
func NewJobPosting(title, company, description, sourceURL string) JobPosting {
	return JobPosting{
		Ref:         uuid.New(),
		Title:       title,
		Company:     company,
		Description: description,
		SourceURL:   sourceURL,
	}
}

// DisplayName returns a human-readable identifier for log output and filenames.
func (j *JobPosting) DisplayName() string {
	switch {
	case j.Company != "" && j.Title != "":
		return j.Company + " - " + j.Title
	case j.Title != "":
		return j.Title
	case j.Company != "":
		return j.Company
	default:
		return j.Ref.String()
	}
}
