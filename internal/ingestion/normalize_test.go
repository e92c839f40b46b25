package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n  "))
}

func TestCleanText_NormalizesLineEndings(t *testing.T) {
	result := CleanText("line one\r\nline two\rline three")
	assert.Equal(t, "line one\nline two\nline three", result)
}

func TestCleanText_CollapsesBlankRuns(t *testing.T) {
	result := CleanText("Experience\n\n\n\n\nEducation")
	assert.Equal(t, "Experience\n\nEducation", result)
}

func TestCleanText_NormalizesBulletMarkers(t *testing.T) {
	result := CleanText("• first\n* second\n- third")
	assert.Equal(t, "- first\n- second\n- third", result)
}

func TestCleanText_PreservesBulletIndent(t *testing.T) {
	result := CleanText("  • nested item")
	assert.Equal(t, "  - nested item", result)
}

func TestCleanText_CollapsesInternalWhitespace(t *testing.T) {
	result := CleanText("Senior    Backend\tEngineer")
	assert.Equal(t, "Senior Backend Engineer", result)
}

func TestCleanText_KeepsHeadings(t *testing.T) {
	result := CleanText("   ## Experience")
	assert.Equal(t, "## Experience", result)
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, LooksLikeHTML("<div class=\"posting\">text</div>"))
	assert.True(t, LooksLikeHTML("<P>Paragraph</P>"))
	assert.True(t, LooksLikeHTML("before <br> after"))
	assert.False(t, LooksLikeHTML("plain resume text"))
	assert.False(t, LooksLikeHTML("a < b and b > c"))
}

func TestStripHTML_DropsScriptAndNav(t *testing.T) {
	html := `<html><body>
		<nav>Home | About</nav>
		<script>track();</script>
		<div>Backend Engineer</div>
		<footer>copyright</footer>
	</body></html>`

	text, err := StripHTML(html)
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.NotContains(t, text, "track()")
	assert.NotContains(t, text, "Home | About")
	assert.NotContains(t, text, "copyright")
}

func TestStripHTML_KeepsBlockBoundaries(t *testing.T) {
	html := `<ul><li>Go</li><li>Python</li></ul>`

	text, err := StripHTML(html)
	require.NoError(t, err)

	normalized := CleanText(text)
	assert.Contains(t, normalized, "Go\n")
	assert.Contains(t, normalized, "Python")
}

func TestNormalize_HTMLInput(t *testing.T) {
	result := Normalize("<div><p>Platform   Engineer</p><p>Remote</p></div>")
	assert.Equal(t, "Platform Engineer\nRemote", result)
}

func TestNormalize_PlainTextPassesThrough(t *testing.T) {
	result := Normalize("Jane Doe\njane@example.com")
	assert.Equal(t, "Jane Doe\njane@example.com", result)
}

func TestNormalize_Deterministic(t *testing.T) {
	in := "  • Built   APIs \r\n\r\n\r\nSkills: Go"
	assert.Equal(t, Normalize(in), Normalize(in))
	assert.Equal(t, Normalize(in), Normalize(Normalize(in)))
}
