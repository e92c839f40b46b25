package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain text", "Senior Backend Engineer", "Senior Backend Engineer"},
		{"ampersand", "Johnson & Johnson", "Johnson \\& Johnson"},
		{"percent", "cut latency by 40%", "cut latency by 40\\%"},
		{"underscore", "snake_case_name", "snake\\_case\\_name"},
		{"hash", "ticket #42", "ticket \\#42"},
		{"dollar", "saved $2M", "saved \\$2M"},
		{"braces", "struct{}", "struct\\{\\}"},
		{"backslash", "C:\\Users", "C:\\textbackslash{}Users"},
		{"caret", "O(n^2)", "O(n\\textasciicircum{}2)"},
		{"tilde", "~/bin", "\\textasciitilde{}/bin"},
		{"mixed", "R&D: 10%_done", "R\\&D: 10\\%\\_done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLaTeX(tt.input))
		})
	}
}

func TestEscapeLaTeX_AlreadyEscapedInputIsEscapedAgain(t *testing.T) {
	// Escaping is not idempotent and callers must escape exactly once.
	result := EscapeLaTeX(`\&`)
	assert.Equal(t, `\textbackslash{}\&`, result)
}

func TestEscapeLaTeX_Unicode(t *testing.T) {
	result := EscapeLaTeX("Zoë Müller, 100% remote")
	assert.Contains(t, result, "Zoë Müller")
	assert.Contains(t, result, "100\\% remote")
}
