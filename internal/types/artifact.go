// Package types provides type definitions for structured data used throughout the tailoring pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// JobState tracks one job through the compilation pipeline
type JobState string

// Pipeline states for a single job. Succeeded and Failed are terminal.
const (
	StatePending   JobState = "pending"
	StateRendering JobState = "rendering"
	StateCompiling JobState = "compiling"
	StateSucceeded JobState = "succeeded"
	StateFailed    JobState = "failed"
)

// Terminal reports whether the state is final.
func (s JobState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// FailureKind classifies why a job's artifact failed
type FailureKind string

// Failure kinds carried by failed artifacts
const (
	FailValidation  FailureKind = "validation"
	FailUnavailable FailureKind = "service_unavailable"
	FailRender      FailureKind = "render"
	FailCompile     FailureKind = "compile"
	FailTimeout     FailureKind = "timeout"
)

// CompiledArtifact is the terminal record for one job. Every submitted job
// yields exactly one artifact, success or failure. The pipeline owns the
// temporary files behind FilePath until the caller copies them out.
type CompiledArtifact struct {
	JobRef      uuid.UUID   `json:"job_ref"`
	Company     string      `json:"company,omitempty"`
	Role        string      `json:"role,omitempty"`
	State       JobState    `json:"state"`
	FilePath    string      `json:"file_path,omitempty"`
	Filename    string      `json:"filename,omitempty"`
	FailureKind FailureKind `json:"failure_kind,omitempty"`
	ErrorDetail string      `json:"error_detail,omitempty"`
}

// Succeeded reports whether the artifact compiled successfully.
func (a *CompiledArtifact) Succeeded() bool {
	return a.State == StateSucceeded
}
