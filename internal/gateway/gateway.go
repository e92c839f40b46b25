// Package gateway provides the single abstraction over the external
// text-generation service. Retries, rate limiting, timeouts and response
// schema checks all live behind it; callers only ever see typed results or
// typed errors.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"google.golang.org/api/googleapi"

	"github.com/kaushik1064/resume-build/internal/llm"
	"github.com/kaushik1064/resume-build/internal/prompts"
)

// PromptKind identifies one of the closed set of generation calls.
type PromptKind string

// The closed enumeration of prompt kinds the gateway accepts.
const (
	ExtractPersonal PromptKind = "extract_personal"
	ExtractProjects PromptKind = "extract_projects"
	AnalyzeDomain   PromptKind = "analyze_domain"
	AnalyzeSections PromptKind = "analyze_sections"
	TailorContent   PromptKind = "tailor_content"
)

// Input carries the text inputs for a generation call. Which fields are
// required depends on the prompt kind; ResumeText is required for all kinds.
type Input struct {
	ResumeText         string
	JobTitle           string
	Company            string
	JobText            string
	PersonalJSON       string
	ProjectsJSON       string
	PolicyInstructions string
}

// Generator is the boundary contract consumed by the extractors, analyzers
// and the tailoring generator. Tests substitute stubs for it.
type Generator interface {
	Generate(ctx context.Context, kind PromptKind, in Input) (json.RawMessage, error)
}

// Options tune the gateway's retry and rate-limit behavior.
type Options struct {
	// MaxConcurrent bounds in-flight calls to the external service.
	// Callers queue rather than fail when the cap is reached.
	MaxConcurrent int64
	// CallTimeout bounds each individual attempt.
	CallTimeout time.Duration
	// MaxAttempts is the retry budget for transient failures.
	MaxAttempts int
	// BaseBackoff is the first retry delay; it doubles per attempt.
	BaseBackoff time.Duration
}

// DefaultOptions returns the gateway defaults: 2 concurrent calls, 60s per
// attempt, 3 attempts with 1s/2s/4s backoff.
func DefaultOptions() Options {
	return Options{
		MaxConcurrent: 2,
		CallTimeout:   60 * time.Second,
		MaxAttempts:   3,
		BaseBackoff:   time.Second,
	}
}

// promptSpec binds a prompt kind to its template key and model tier.
type promptSpec struct {
	key  string
	tier llm.ModelTier
}

var promptSpecs = map[PromptKind]promptSpec{
	ExtractPersonal: {key: "extract-personal", tier: llm.TierStandard},
	ExtractProjects: {key: "extract-projects", tier: llm.TierStandard},
	AnalyzeDomain:   {key: "analyze-domain", tier: llm.TierStandard},
	AnalyzeSections: {key: "analyze-sections", tier: llm.TierLite},
	TailorContent:   {key: "tailor-content", tier: llm.TierAdvanced},
}

// Gateway implements Generator against an llm.Client.
type Gateway struct {
	client llm.Client
	opts   Options
	sem    *semaphore.Weighted
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates a gateway around the given client.
func New(client llm.Client, opts Options) *Gateway {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultOptions().MaxConcurrent
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultOptions().CallTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = DefaultOptions().BaseBackoff
	}
	return &Gateway{
		client: client,
		opts:   opts,
		sem:    semaphore.NewWeighted(opts.MaxConcurrent),
		sleep:  sleepContext,
	}
}

// Generate runs one generation call: validate input, queue behind the
// concurrency cap, retry transient failures with exponential backoff, and
// schema-check the response before handing it back.
func (g *Gateway) Generate(ctx context.Context, kind PromptKind, in Input) (json.RawMessage, error) {
	spec, ok := promptSpecs[kind]
	if !ok {
		return nil, &ValidationError{Field: "kind", Message: "unknown prompt kind " + string(kind)}
	}

	if err := validateInput(kind, in); err != nil {
		return nil, err
	}

	prompt := buildPrompt(spec.key, in)

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, wrapContextErr(ctx, "waiting for generation slot", err)
	}
	defer g.sem.Release(1)

	var lastErr error
	backoff := g.opts.BaseBackoff

	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, g.opts.CallTimeout)
		text, err := g.client.GenerateJSON(attemptCtx, prompt, spec.tier)
		cancel()

		if err == nil {
			if verr := validateResponse(kind, text); verr != nil {
				return nil, verr
			}
			return json.RawMessage(text), nil
		}

		// The session-level context ending is terminal regardless of attempts left.
		if ctx.Err() != nil {
			return nil, wrapContextErr(ctx, "generation call for "+string(kind), ctx.Err())
		}

		lastErr = err
		if !isTransient(err) {
			break
		}

		if attempt < g.opts.MaxAttempts {
			if serr := g.sleep(ctx, backoff); serr != nil {
				return nil, wrapContextErr(ctx, "backoff for "+string(kind), serr)
			}
			backoff *= 2
		}
	}

	return nil, &ServiceUnavailableError{Attempts: g.opts.MaxAttempts, Cause: lastErr}
}

// validateInput enforces the non-empty-text contract before any external call.
func validateInput(kind PromptKind, in Input) error {
	if strings.TrimSpace(in.ResumeText) == "" {
		return &ValidationError{Field: "resume_text", Message: "resume text is required"}
	}
	switch kind {
	case AnalyzeDomain, TailorContent:
		if strings.TrimSpace(in.JobText) == "" {
			return &ValidationError{Field: "job_text", Message: "job description text is required"}
		}
	}
	return nil
}

// buildPrompt fills the embedded template for the given prompt key.
func buildPrompt(key string, in Input) string {
	template := prompts.MustGet("tailoring.json", key)
	return prompts.Format(template, map[string]string{
		"ResumeText":         in.ResumeText,
		"JobTitle":           in.JobTitle,
		"Company":            in.Company,
		"JobText":            in.JobText,
		"PersonalJSON":       in.PersonalJSON,
		"ProjectsJSON":       in.ProjectsJSON,
		"PolicyInstructions": in.PolicyInstructions,
	})
}

// isTransient reports whether an error is worth retrying: per-attempt
// timeouts, rate-limit signals and 5xx-equivalent responses.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	// Gemini client errors do not always expose googleapi.Error; fall back
	// to the status text the API returns for throttling and server faults.
	msg := err.Error()
	for _, marker := range []string{"429", "rate limit", "quota", "500", "503", "unavailable", "deadline exceeded"} {
		if strings.Contains(strings.ToLower(msg), marker) {
			return true
		}
	}
	return false
}

// wrapContextErr converts context termination into the pipeline's typed errors.
func wrapContextErr(ctx context.Context, operation string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Operation: operation, Cause: err}
	}
	return err
}

// sleepContext waits for d or until the context ends, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
