// Package ingestion normalizes raw extracted text before any analysis runs.
// File readers and scrapers are external collaborators; this package only
// cleans what they hand over.
package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRe      = regexp.MustCompile(`\s+`)
	blankLinesRe = regexp.MustCompile(`\n\n\n+`)
	htmlHintRe   = regexp.MustCompile(`(?i)<\s*(html|body|div|p|br|ul|li|span|h[1-6])\b`)
)

// Normalize cleans text content while preserving line structure. Scraped job
// postings often arrive as HTML fragments; those are flattened to text first.
func Normalize(content string) string {
	if content == "" {
		return ""
	}

	if LooksLikeHTML(content) {
		if text, err := StripHTML(content); err == nil {
			content = text
		}
	}

	return CleanText(content)
}

// CleanText normalizes line endings and whitespace while preserving headings
// and bullet lists.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, " ", " ")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Keep markdown-style headings, drop their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Normalize bullet markers to "- " and keep indentation
	indent := len(line) - len(trimmed)
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			body := spaceRe.ReplaceAllString(strings.TrimSpace(trimmed[len(marker):]), " ")
			return strings.Repeat(" ", indent) + "- " + body
		}
	}

	content := spaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// LooksLikeHTML reports whether content appears to be an HTML fragment
// rather than plain text.
func LooksLikeHTML(content string) bool {
	return htmlHintRe.MatchString(content)
}

// StripHTML flattens an HTML fragment to text, dropping script, style and
// navigation noise and keeping block boundaries as line breaks.
func StripHTML(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	// Insert newlines at block boundaries so headings and list items stay on
	// their own lines after flattening.
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return doc.Text(), nil
}
