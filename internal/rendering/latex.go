// Package rendering turns a parsed profile into export documents: a Markdown
// CV, a GitHub profile README, a professional-network payload, and a LaTeX CV.
package rendering

import (
	_ "embed"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-profiler/internal/types"
)

//go:embed templates/cv.tex
var defaultTemplate string

const latexSkillLimit = 50

// TemplateData represents the data structure passed to the LaTeX template.
// Every string is already escaped.
type TemplateData struct {
	Name       string
	Contact    []string
	Experience []ExperienceSection
	Projects   []ProjectSection
	Education  []EducationSection
	Skills     []string
}

// ExperienceSection is one position in the LaTeX CV.
type ExperienceSection struct {
	Title   string
	Company string
	Dates   string
	Bullets []string
}

// ProjectSection is one project in the LaTeX CV.
type ProjectSection struct {
	Name    string
	Summary string
	Link    string
	Bullets []string
}

// EducationSection is one education line in the LaTeX CV.
type EducationSection struct {
	School string
	Degree string
	Years  string
}

// RenderLaTeX renders p with the template at templatePath, or with the
// built-in template when templatePath is empty.
func RenderLaTeX(p *types.Profile, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	if p == nil {
		return "", &RenderError{Format: "latex", Message: "no profile to render"}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(p)); err != nil {
		return "", &TemplateError{
			Path:    templatePath,
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Path:    templatePath,
					Message: "template file not found",
					Cause:   err,
				}
			}
			return nil, &TemplateError{
				Path:    templatePath,
				Message: "failed to read template file",
				Cause:   err,
			}
		}
		content = string(raw)
	}

	tmpl, err := template.New("cv").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"join":   strings.Join,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Path:    templatePath,
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// buildTemplateData escapes and flattens the profile for the template.
func buildTemplateData(p *types.Profile) *TemplateData {
	data := &TemplateData{
		Name:   EscapeLaTeX(types.Or(p.Contact.Name, PlaceholderName)),
		Skills: EscapeAll(p.Skills.Categories.Flatten(latexSkillLimit)),
	}

	for _, part := range contactParts(p.Contact) {
		data.Contact = append(data.Contact, EscapeLaTeX(part))
	}

	for _, e := range p.Experience {
		data.Experience = append(data.Experience, ExperienceSection{
			Title:   EscapeLaTeX(types.Or(e.Title, PlaceholderRole)),
			Company: EscapeLaTeX(types.Or(e.Company, PlaceholderCompany)),
			Dates:   EscapeLaTeX(experienceDetails(e)),
			Bullets: EscapeAll(e.Highlights),
		})
	}

	for _, proj := range p.Projects {
		section := ProjectSection{
			Name:    EscapeLaTeX(types.Or(proj.Name, PlaceholderProject)),
			Summary: EscapeLaTeX(types.Deref(proj.Summary)),
			Bullets: EscapeAll(proj.Highlights),
		}
		if len(proj.Links) > 0 {
			section.Link = proj.Links[0]
		}
		data.Projects = append(data.Projects, section)
	}

	for _, e := range p.Education {
		degree := types.Or(e.Degree, PlaceholderDegree)
		if f := types.Deref(e.Field); f != "" {
			degree += " in " + f
		}
		data.Education = append(data.Education, EducationSection{
			School: EscapeLaTeX(types.Or(e.School, PlaceholderInstitution)),
			Degree: EscapeLaTeX(degree),
			Years:  EscapeLaTeX(joinNonEmpty(" -- ", types.Deref(e.StartYear), types.Deref(e.EndYear))),
		})
	}

	return data
}
