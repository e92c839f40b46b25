package rendering

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/kaushik1064/resume-build/internal/types"
)

//go:embed resume.tex
var defaultTemplate string

// DefaultTemplate returns the embedded single-page resume template.
func DefaultTemplate() string {
	return defaultTemplate
}

// templateData is the escaped view of TailoredContent handed to the template.
// Every user-sourced and AI-generated string is escaped before it gets here;
// the template itself never escapes.
type templateData struct {
	Name        string
	Role        string
	ContactLine string
	Summary     string
	Skills      []skillLine
	Experience  []experienceBlock
	Projects    []projectBlock
	Education   []educationBlock
}

type skillLine struct {
	Category string
	List     string
}

type experienceBlock struct {
	Company   string
	Role      string
	DateRange string
	Bullets   []string
}

type projectBlock struct {
	Name      string
	DateRange string
	Lines     []string
}

type educationBlock struct {
	Institution string
	Degree      string
	DateRange   string
	Detail      string
}

// Render merges tailored content into a LaTeX template. It is a pure
// function: identical template and content always produce identical output,
// and the content is never mutated. Missing optional fields render as empty
// strings, never as placeholder tokens.
func Render(tmpl string, content *types.TailoredContent) (string, error) {
	if content == nil {
		return "", &RenderError{Message: "tailored content is nil"}
	}

	parsed, err := template.New("resume").Parse(tmpl)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse template", Cause: err}
	}

	var out strings.Builder
	if err := parsed.Execute(&out, buildTemplateData(content)); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}

	return out.String(), nil
}

// buildTemplateData escapes every substituted field of the tailored content.
func buildTemplateData(content *types.TailoredContent) *templateData {
	data := &templateData{
		Name:        EscapeLaTeX(content.Profile.FullName),
		Role:        EscapeLaTeX(content.TargetRole),
		ContactLine: buildContactLine(&content.Profile),
		Summary:     EscapeLaTeX(content.Summary),
	}

	for _, s := range content.Skills {
		escaped := make([]string, len(s.Skills))
		for i, skill := range s.Skills {
			escaped[i] = EscapeLaTeX(skill)
		}
		data.Skills = append(data.Skills, skillLine{
			Category: EscapeLaTeX(s.Category),
			List:     strings.Join(escaped, ", "),
		})
	}

	for _, e := range content.Experience {
		block := experienceBlock{
			Company:   EscapeLaTeX(e.Company),
			Role:      EscapeLaTeX(e.Role),
			DateRange: EscapeLaTeX(e.DateRange),
		}
		for _, b := range e.Bullets {
			block.Bullets = append(block.Bullets, EscapeLaTeX(b))
		}
		data.Experience = append(data.Experience, block)
	}

	for _, p := range content.Projects {
		block := projectBlock{
			Name:      EscapeLaTeX(p.Name),
			DateRange: EscapeLaTeX(p.DateRange),
		}
		for _, line := range p.DescriptionLines {
			block.Lines = append(block.Lines, EscapeLaTeX(line))
		}
		data.Projects = append(data.Projects, block)
	}

	for _, ed := range content.Education {
		data.Education = append(data.Education, educationBlock{
			Institution: EscapeLaTeX(ed.Institution),
			Degree:      EscapeLaTeX(ed.Degree),
			DateRange:   EscapeLaTeX(ed.DateRange),
			Detail:      EscapeLaTeX(ed.Detail),
		})
	}

	return data
}

// buildContactLine joins contact fields with LaTeX separators, skipping
// whatever is absent.
func buildContactLine(profile *types.PersonalProfile) string {
	var parts []string
	for _, field := range []string{profile.Email, profile.Phone, profile.Location} {
		if field != "" {
			parts = append(parts, EscapeLaTeX(field))
		}
	}
	for _, link := range profile.Links {
		if link.URL == "" {
			continue
		}
		label := link.Label
		if label == "" {
			label = link.URL
		}
		parts = append(parts, `\href{`+sanitizeURL(link.URL)+`}{`+EscapeLaTeX(label)+`}`)
	}
	return strings.Join(parts, ` $|$ `)
}

// sanitizeURL strips characters that would break a \href argument. URLs are
// not escaped like prose; hyperref takes them near-verbatim.
func sanitizeURL(url string) string {
	replacer := strings.NewReplacer(
		"\\", "", "{", "", "}", "", "%", "\\%", "#", "\\#", " ", "",
	)
	return replacer.Replace(url)
}
