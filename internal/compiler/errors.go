package compiler

import "fmt"

// CompileError indicates the external document compiler rejected the source.
// Diagnostic carries the compiler's own error lines verbatim for the user.
type CompileError struct {
	Diagnostic string
	LogOutput  string
	Cause      error
}

func (e *CompileError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("compilation failed: %s", e.Diagnostic)
	}
	if e.Cause != nil {
		return fmt.Sprintf("compilation failed: %v", e.Cause)
	}
	return "compilation failed"
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates the compiler subprocess exceeded its deadline.
type TimeoutError struct {
	Cause error
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compiler timed out: %v", e.Cause)
	}
	return "compiler timed out"
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
