// Package compiler drives pdflatex to turn rendered LaTeX into PDFs.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultBinary is the LaTeX engine used when none is configured.
	DefaultBinary = "pdflatex"

	// DefaultTimeout bounds a single compilation, both passes included.
	DefaultTimeout = 60 * time.Second

	// passes is how many times the engine runs. Two passes resolve
	// cross-references and hyperref anchors.
	passes = 2

	sourceName = "resume.tex"
)

// Compiler invokes an external LaTeX engine in an isolated working
// directory per document.
type Compiler struct {
	Binary  string
	Timeout time.Duration
}

// New returns a Compiler with defaults filled in for empty fields.
func New(binary string, timeout time.Duration) *Compiler {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Compiler{Binary: binary, Timeout: timeout}
}

// Available reports whether the configured engine can be found in PATH.
func (c *Compiler) Available() bool {
	_, err := exec.LookPath(c.Binary)
	return err == nil
}

// Compile writes source into its own temporary directory, runs the engine
// twice, and returns the path of the produced PDF. The PDF stays inside the
// returned work directory; callers copy it out and then call Cleanup.
func (c *Compiler) Compile(ctx context.Context, source string) (pdfPath string, workDir string, err error) {
	if _, err := exec.LookPath(c.Binary); err != nil {
		return "", "", &CompileError{
			Diagnostic: fmt.Sprintf("%s not found in PATH, install a LaTeX distribution (e.g. TeX Live)", c.Binary),
			Cause:      err,
		}
	}

	workDir, err = os.MkdirTemp("", "resume-compile-*")
	if err != nil {
		return "", "", &CompileError{Diagnostic: "failed to create working directory", Cause: err}
	}

	texPath := filepath.Join(workDir, sourceName)
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return "", workDir, &CompileError{Diagnostic: "failed to write LaTeX source", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var logOutput string
	var runErr error
	for pass := 0; pass < passes; pass++ {
		logOutput, runErr = c.runPass(ctx, workDir, texPath)
		if ctx.Err() != nil {
			return "", workDir, &TimeoutError{Cause: ctx.Err()}
		}
		if runErr != nil {
			break
		}
	}

	// The engine can exit nonzero and still emit a usable PDF, and it can
	// exit zero without one. The PDF on disk is the ground truth.
	pdfPath = filepath.Join(workDir, strings.TrimSuffix(sourceName, ".tex")+".pdf")
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		return "", workDir, &CompileError{
			Diagnostic: extractDiagnostics(logOutput),
			LogOutput:  logOutput,
			Cause:      runErr,
		}
	}

	return pdfPath, workDir, nil
}

func (c *Compiler) runPass(ctx context.Context, workDir, texPath string) (string, error) {
	// nonstopmode keeps the engine from stopping at an interactive prompt.
	cmd := exec.CommandContext(ctx, c.Binary, "-interaction=nonstopmode", "-output-directory", workDir, texPath)
	cmd.Dir = workDir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String() + stderr.String(), err
}

// Cleanup removes a working directory created by Compile. Directories not
// created by Compile are left alone.
func Cleanup(workDir string) error {
	if workDir == "" || !strings.Contains(filepath.Base(workDir), "resume-compile-") {
		return nil
	}
	return os.RemoveAll(workDir)
}

// extractDiagnostics pulls the engine's error lines out of the log verbatim.
// pdflatex prefixes errors with "! ", usually followed by an "l.<n>" line
// pointing at the source.
func extractDiagnostics(logOutput string) string {
	lines := strings.Split(logOutput, "\n")
	var picked []string
	for i, ln := range lines {
		if strings.HasPrefix(ln, "! ") {
			picked = append(picked, strings.TrimSpace(ln))
			for j := i + 1; j < len(lines) && j <= i+3; j++ {
				next := strings.TrimSpace(lines[j])
				if strings.HasPrefix(next, "l.") {
					picked = append(picked, next)
					break
				}
			}
		}
	}
	if len(picked) > 0 {
		return strings.Join(picked, "; ")
	}

	// No marked errors; fall back to the tail of the log.
	tail := lines
	if len(tail) > 10 {
		tail = tail[len(tail)-10:]
	}
	trimmed := strings.TrimSpace(strings.Join(tail, "\n"))
	if trimmed == "" {
		return "PDF was not generated and the compiler produced no log output"
	}
	return trimmed
}

// IsTimeout reports whether err is a compiler timeout, including a raw
// context deadline surfacing through a wrapped cause.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te) || errors.Is(err, context.DeadlineExceeded)
}
