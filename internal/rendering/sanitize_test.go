package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsMarkdownFences(t *testing.T) {
	in := "```latex\n\\documentclass{article}\n```"
	out := Sanitize(in)

	assert.NotContains(t, out, "```")
	assert.Contains(t, out, `\documentclass{article}`)
}

func TestSanitize_CollapsesDuplicateDocumentBegin(t *testing.T) {
	in := "\\begin{document}\n\\begin{document}\ntext\n\\end{document}"
	out := Sanitize(in)

	assert.Equal(t, 1, strings.Count(out, `\begin{document}`))
}

func TestSanitize_EscapesBareAmpersand(t *testing.T) {
	out := Sanitize("Johnson & Johnson")
	assert.Contains(t, out, `Johnson \& Johnson`)
}

func TestSanitize_LeavesEscapedAmpersandAlone(t *testing.T) {
	out := Sanitize(`Johnson \& Johnson`)
	assert.Equal(t, "Johnson \\& Johnson\n", out)
}

func TestSanitize_SkipsAmpersandInsideTabular(t *testing.T) {
	in := "\\begin{tabular}{ll}\na & b \\\\\n\\end{tabular}"
	out := Sanitize(in)

	assert.Contains(t, out, "a & b")
	assert.NotContains(t, out, `a \& b`)
}

func TestSanitize_SkipsAmpersandOnURLLines(t *testing.T) {
	in := `\href{https://example.com?a=1&b=2}{link}`
	out := Sanitize(in)

	assert.Contains(t, out, "a=1&b=2")
}

func TestSanitize_EscapesBareUnderscore(t *testing.T) {
	out := Sanitize("snake_case")
	assert.Contains(t, out, `snake\_case`)
}

func TestSanitize_EscapesConsecutiveUnderscores(t *testing.T) {
	out := Sanitize("a__b")
	assert.Contains(t, out, `a\_\_b`)

	out = Sanitize("dunder___name")
	assert.Contains(t, out, `dunder\_\_\_name`)
}

func TestSanitize_LeadingUnderscore(t *testing.T) {
	out := Sanitize("_private")
	assert.True(t, strings.HasPrefix(out, `\_private`))
}

func TestSanitize_LeavesEscapedUnderscoreAlone(t *testing.T) {
	out := Sanitize(`snake\_case`)
	assert.Equal(t, "snake\\_case\n", out)
}

func TestSanitize_BalancesBraces(t *testing.T) {
	out := Sanitize(`\textbf{unclosed`)
	assert.Equal(t, strings.Count(out, "{"), strings.Count(out, "}"))
}

func TestSanitize_Idempotent(t *testing.T) {
	in := "```latex\nJohnson & Johnson with snake_case\n```"
	once := Sanitize(in)
	twice := Sanitize(once)

	assert.Equal(t, once, twice)
}
