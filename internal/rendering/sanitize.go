package rendering

import (
	"regexp"
	"strings"
)

var (
	fenceRe          = regexp.MustCompile("```(?:latex)?")
	dupDocumentRe    = regexp.MustCompile(`(\\begin\{document\}\s*){2,}`)
	beginEnvRe       = regexp.MustCompile(`\\begin\{([^}]*)\}`)
	endEnvRe         = regexp.MustCompile(`\\end\{([^}]*)\}`)
	bareUnderscoreRe = regexp.MustCompile(`([^\\])_`)
)

// tabularEnvs are environments where & is a column separator and must not be
// escaped.
var tabularEnvs = map[string]bool{
	"tabular": true, "tabular*": true, "array": true,
	"align": true, "align*": true, "matrix": true,
}

// Sanitize applies deterministic fixes for common LaTeX problems in a
// rendered document: markdown fences, duplicated document environments,
// bare ampersands and underscores, and unbalanced braces. It is a safety
// pass before compilation, not a substitute for field escaping.
func Sanitize(source string) string {
	s := fenceRe.ReplaceAllString(source, "")
	s = dupDocumentRe.ReplaceAllString(s, "\\begin{document}\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	inTabular := false

	for _, ln := range lines {
		if m := beginEnvRe.FindStringSubmatch(ln); m != nil && tabularEnvs[strings.TrimSpace(m[1])] {
			inTabular = true
		}
		if m := endEnvRe.FindStringSubmatch(ln); m != nil && tabularEnvs[strings.TrimSpace(m[1])] {
			inTabular = false
		}

		if !inTabular && strings.Contains(ln, "&") && !strings.Contains(ln, `\&`) {
			if !containsAny(ln, `\href`, "http", "mailto:", `\url`) {
				ln = strings.ReplaceAll(ln, "&", `\&`)
			}
		}
		out = append(out, ln)
	}
	s = strings.Join(out, "\n")

	// The match consumes the character before the underscore, so a run of
	// underscores needs repeated passes until nothing bare remains.
	for {
		replaced := bareUnderscoreRe.ReplaceAllString(s, `$1\_`)
		if replaced == s {
			break
		}
		s = replaced
	}
	if strings.HasPrefix(s, "_") {
		s = `\` + s
	}

	if diff := strings.Count(s, "{") - strings.Count(s, "}"); diff > 0 {
		s += strings.Repeat("}", diff)
	}

	return strings.TrimSpace(s) + "\n"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
