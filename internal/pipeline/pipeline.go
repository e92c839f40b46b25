// Package pipeline orchestrates a tailoring session: one resume, N jobs,
// exactly N compiled artifacts out. Jobs run in parallel and fail
// independently; one bad posting never takes down its siblings.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/kaushik1064/resume-build/internal/analysis"
	"github.com/kaushik1064/resume-build/internal/compiler"
	"github.com/kaushik1064/resume-build/internal/extraction"
	"github.com/kaushik1064/resume-build/internal/gateway"
	"github.com/kaushik1064/resume-build/internal/ingestion"
	"github.com/kaushik1064/resume-build/internal/rendering"
	"github.com/kaushik1064/resume-build/internal/tailoring"
	"github.com/kaushik1064/resume-build/internal/types"
)

// DocumentCompiler is the subprocess boundary; tests substitute stubs so the
// pipeline can run without a LaTeX installation.
type DocumentCompiler interface {
	Compile(ctx context.Context, source string) (pdfPath string, workDir string, err error)
}

// ProgressFunc receives per-job state transitions as they happen. It is
// called from job goroutines and must be safe for concurrent use.
type ProgressFunc func(job types.JobPosting, state types.JobState)

// Request is one tailoring session.
type Request struct {
	ResumeText       string             `validate:"required"`
	Jobs             []types.JobPosting `validate:"required,min=1,dive"`
	Preferences      *types.SectionPreferences
	ReconcileDomains bool
	Strength         tailoring.ReframeStrength
	Template         string
	OutputDir        string `validate:"required"`
}

// Result carries the session outcome: the shared analyses plus one terminal
// artifact per submitted job, in input order.
type Result struct {
	Profile   *types.PersonalProfile
	Projects  []types.ProjectRecord
	GapReport *types.SectionGapReport
	Verdicts  []types.DomainVerdict
	Artifacts []types.CompiledArtifact
}

// Succeeded counts jobs that produced a PDF.
func (r *Result) Succeeded() int {
	n := 0
	for i := range r.Artifacts {
		if r.Artifacts[i].Succeeded() {
			n++
		}
	}
	return n
}

// Pipeline wires the generation gateway and the document compiler into the
// session flow.
type Pipeline struct {
	gen      gateway.Generator
	comp     DocumentCompiler
	validate *validator.Validate
	progress ProgressFunc
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithProgress registers a per-job state transition callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// WithCompiler replaces the default pdflatex compiler.
func WithCompiler(c DocumentCompiler) Option {
	return func(p *Pipeline) { p.comp = c }
}

// New creates a pipeline around a generator. The default compiler shells out
// to pdflatex with the package defaults.
func New(gen gateway.Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		gen:      gen,
		comp:     compiler.New("", 0),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes a full session. It returns an error only when the session as
// a whole cannot start: invalid request, unusable resume text, or a rejected
// shared analysis. Per-job failures are reported through the artifacts.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if err := p.validate.Struct(req); err != nil {
		return nil, &gateway.ValidationError{Field: firstInvalidField(err), Message: err.Error()}
	}

	resumeText := ingestion.Normalize(req.ResumeText)
	if resumeText == "" {
		return nil, &gateway.ValidationError{Field: "resume_text", Message: "resume text is empty after normalization"}
	}

	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", req.OutputDir, err)
	}

	resume := &types.ResumeSource{Text: resumeText}

	// Shared analyses run once per session, in parallel. Their results are
	// read-only inputs to every job branch.
	result := &Result{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := extraction.ExtractPersonal(gCtx, p.gen, resumeText)
		result.Profile = profile
		return err
	})
	g.Go(func() error {
		projects, err := extraction.ExtractProjects(gCtx, p.gen, resumeText)
		result.Projects = projects
		return err
	})
	g.Go(func() error {
		report, err := analysis.AnalyzeSections(gCtx, p.gen, resumeText)
		result.GapReport = report
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	resume.Profile = result.Profile
	resume.Projects = result.Projects

	verdicts, _, err := analysis.AnalyzeDomains(ctx, p.gen, resumeText, req.Jobs)
	if err != nil {
		return nil, err
	}
	result.Verdicts = verdicts

	result.Artifacts = make([]types.CompiledArtifact, len(req.Jobs))
	jg, jCtx := errgroup.WithContext(ctx)
	for i, job := range req.Jobs {
		i, job := i, job
		verdict := verdicts[i]
		jg.Go(func() error {
			result.Artifacts[i] = p.runJob(jCtx, req, resume, result, job, verdict, i+1)
			return nil
		})
	}
	_ = jg.Wait()

	return result, nil
}

// runJob takes one job from tailoring through compilation. Every exit path
// produces a terminal artifact.
func (p *Pipeline) runJob(ctx context.Context, req Request, resume *types.ResumeSource, result *Result, job types.JobPosting, verdict types.DomainVerdict, ordinal int) types.CompiledArtifact {
	artifact := types.CompiledArtifact{
		JobRef:  job.Ref,
		Company: job.Company,
		Role:    job.Title,
		State:   types.StatePending,
	}
	p.report(job, types.StatePending)

	content, err := tailoring.Generate(ctx, p.gen, tailoring.Request{
		Resume:          resume,
		Job:             job,
		Profile:         resume.Profile,
		Projects:        resume.Projects,
		GapReport:       result.GapReport,
		Preferences:     req.Preferences,
		ReconcileDomain: req.ReconcileDomains && verdict.MismatchDetected,
		Strength:        req.Strength,
	})
	if err != nil {
		return p.fail(&artifact, job, err)
	}

	artifact.State = types.StateRendering
	p.report(job, types.StateRendering)

	tmpl := req.Template
	if tmpl == "" {
		tmpl = rendering.DefaultTemplate()
	}
	source, err := rendering.Render(tmpl, content)
	if err != nil {
		return p.fail(&artifact, job, err)
	}
	source = rendering.Sanitize(source)

	artifact.State = types.StateCompiling
	p.report(job, types.StateCompiling)

	pdfPath, workDir, err := p.comp.Compile(ctx, source)
	defer func() { _ = compiler.Cleanup(workDir) }()
	if err != nil {
		return p.fail(&artifact, job, err)
	}

	filename := artifactFilename(ordinal, job)
	destPath := filepath.Join(req.OutputDir, filename)
	if err := copyFile(pdfPath, destPath); err != nil {
		return p.fail(&artifact, job, &compiler.CompileError{Diagnostic: "failed to store compiled PDF", Cause: err})
	}

	artifact.State = types.StateSucceeded
	artifact.FilePath = destPath
	artifact.Filename = filename
	p.report(job, types.StateSucceeded)
	return artifact
}

func (p *Pipeline) fail(artifact *types.CompiledArtifact, job types.JobPosting, err error) types.CompiledArtifact {
	artifact.State = types.StateFailed
	artifact.FailureKind = classifyFailure(err)
	artifact.ErrorDetail = err.Error()
	p.report(job, types.StateFailed)
	return *artifact
}

func (p *Pipeline) report(job types.JobPosting, state types.JobState) {
	if p.progress != nil {
		p.progress(job, state)
	}
}

// AnalyzeDomains is the narrow analysis-only entry point: verdicts without
// generation or compilation.
func (p *Pipeline) AnalyzeDomains(ctx context.Context, resumeText string, jobs []types.JobPosting) ([]types.DomainVerdict, bool, error) {
	normalized := ingestion.Normalize(resumeText)
	if normalized == "" {
		return nil, false, &gateway.ValidationError{Field: "resume_text", Message: "resume text is empty after normalization"}
	}
	return analysis.AnalyzeDomains(ctx, p.gen, normalized, jobs)
}

// AnalyzeSections is the narrow gap-report entry point.
func (p *Pipeline) AnalyzeSections(ctx context.Context, resumeText string) (*types.SectionGapReport, error) {
	normalized := ingestion.Normalize(resumeText)
	if normalized == "" {
		return nil, &gateway.ValidationError{Field: "resume_text", Message: "resume text is empty after normalization"}
	}
	return analysis.AnalyzeSections(ctx, p.gen, normalized)
}

// classifyFailure maps a job branch error to its artifact failure kind.
func classifyFailure(err error) types.FailureKind {
	var (
		valErr    *gateway.ValidationError
		unavErr   *gateway.ServiceUnavailableError
		gwTimeout *gateway.TimeoutError
		tmplErr   *rendering.TemplateError
		rendErr   *rendering.RenderError
		compErr   *compiler.CompileError
	)
	switch {
	case errors.As(err, &valErr):
		return types.FailValidation
	case errors.As(err, &unavErr):
		return types.FailUnavailable
	case errors.As(err, &gwTimeout), compiler.IsTimeout(err):
		return types.FailTimeout
	case errors.As(err, &tmplErr), errors.As(err, &rendErr):
		return types.FailRender
	case errors.As(err, &compErr):
		return types.FailCompile
	default:
		return types.FailUnavailable
	}
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// artifactFilename derives resume_<n>_<company>_<role>.pdf with unsafe
// characters replaced.
func artifactFilename(ordinal int, job types.JobPosting) string {
	company := safeComponent(job.Company, "company")
	role := safeComponent(job.Title, "role")
	return fmt.Sprintf("resume_%d_%s_%s.pdf", ordinal, company, role)
}

func safeComponent(s, fallback string) string {
	s = unsafeFilenameRe.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "_")
	if len(s) > 40 {
		s = s[:40]
	}
	if s == "" {
		return fallback
	}
	return s
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// firstInvalidField extracts a field name from validator output for the
// typed validation error.
func firstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return strings.ToLower(verrs[0].Field())
	}
	return "request"
}
