package rendering

import (
	"strings"

	"github.com/jonathan/resume-profiler/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholders used when a field is missing.
const (
	PlaceholderName        = "Your Name"
	PlaceholderRole        = "Role"
	PlaceholderCompany     = "Company"
	PlaceholderProject     = "Project"
	PlaceholderInstitution = "Institution"
	PlaceholderDegree      = "Degree"
	PresentLabel           = "Present"

	aboutMeText = "I build reliable software products and focus on delivering measurable impact."

	cvSkillLimit        = 50
	readmeHighlightSize = 3
)

// CVMarkdown renders a one-document CV.
func CVMarkdown(p *types.Profile) string {
	lines := []string{"# " + types.Or(p.Contact.Name, PlaceholderName), ""}

	if contact := contactParts(p.Contact); len(contact) > 0 {
		lines = append(lines, strings.Join(contact, " | "), "")
	}

	if len(p.Experience) > 0 {
		lines = append(lines, "## Experience")
		for _, e := range p.Experience {
			heading := "### " + types.Or(e.Title, PlaceholderRole) + ", " + types.Or(e.Company, PlaceholderCompany)
			if details := experienceDetails(e); details != "" {
				heading += " (" + details + ")"
			}
			lines = append(lines, heading)
			for _, h := range e.Highlights {
				lines = append(lines, "- "+h)
			}
			lines = append(lines, "")
		}
	}

	if len(p.Projects) > 0 {
		lines = append(lines, "## Projects")
		for _, proj := range p.Projects {
			lines = append(lines, "### "+types.Or(proj.Name, PlaceholderProject))
			if s := types.Deref(proj.Summary); s != "" {
				lines = append(lines, s)
			}
			for _, h := range proj.Highlights {
				lines = append(lines, "- "+h)
			}
			if len(proj.Links) > 0 {
				lines = append(lines, "- Link: "+proj.Links[0])
			}
			lines = append(lines, "")
		}
	}

	if len(p.Education) > 0 {
		lines = append(lines, "## Education")
		for _, e := range p.Education {
			degree := types.Or(e.Degree, PlaceholderDegree)
			if f := types.Deref(e.Field); f != "" {
				degree += " in " + f
			}
			line := "- **" + types.Or(e.School, PlaceholderInstitution) + "**: " + degree
			if years := joinNonEmpty(" - ", types.Deref(e.StartYear), types.Deref(e.EndYear)); years != "" {
				line += " (" + years + ")"
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	if skills := p.Skills.Categories.Flatten(cvSkillLimit); len(skills) > 0 {
		lines = append(lines, "## Skills", strings.Join(skills, ", "), "")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// GitHubReadme renders a developer profile README.
func GitHubReadme(p *types.Profile) string {
	c := p.Contact
	lines := []string{
		"# " + types.Or(c.Name, PlaceholderName),
		"",
		"## About Me",
		aboutMeText,
		"",
		"## Contact",
	}
	if v := types.Deref(c.Email); v != "" {
		lines = append(lines, "- Email: "+v)
	}
	if v := types.Deref(c.Links.LinkedIn); v != "" {
		lines = append(lines, "- LinkedIn: "+v)
	}
	if v := types.Deref(c.Links.GitHub); v != "" {
		lines = append(lines, "- GitHub: "+v)
	}
	for _, other := range c.Links.Other {
		lines = append(lines, "- Portfolio/Other: "+other)
	}

	lines = append(lines, "", "## Skills")
	for _, cat := range p.Skills.Categories {
		if len(cat.Skills) == 0 {
			continue
		}
		lines = append(lines, "- **"+HumanizeCategory(cat.Name)+"**: "+strings.Join(cat.Skills, ", "))
	}

	if len(p.Experience) > 0 {
		lines = append(lines, "", "## Experience")
		for _, e := range p.Experience {
			lines = append(lines, "### "+types.Or(e.Title, PlaceholderRole)+" - "+types.Or(e.Company, PlaceholderCompany))
			for _, h := range head(e.Highlights, readmeHighlightSize) {
				lines = append(lines, "- "+h)
			}
			lines = append(lines, "")
		}
	}

	if len(p.Projects) > 0 {
		if lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, "## Projects")
		for _, proj := range p.Projects {
			lines = append(lines, "### "+types.Or(proj.Name, PlaceholderProject))
			if s := types.Deref(proj.Summary); s != "" {
				lines = append(lines, s)
			}
			for _, h := range head(proj.Highlights, readmeHighlightSize) {
				lines = append(lines, "- "+h)
			}
			if len(proj.Links) > 0 {
				lines = append(lines, "- Link: "+proj.Links[0])
			}
			lines = append(lines, "")
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// HumanizeCategory turns a category key such as "cloud_devops" into "Cloud Devops".
func HumanizeCategory(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}

func contactParts(c types.Contact) []string {
	var parts []string
	if v := types.Deref(c.Email); v != "" {
		parts = append(parts, v)
	}
	if v := types.Deref(c.Phone); v != "" {
		parts = append(parts, v)
	}
	if v := types.Deref(c.Links.LinkedIn); v != "" {
		parts = append(parts, "LinkedIn: "+v)
	}
	if v := types.Deref(c.Links.GitHub); v != "" {
		parts = append(parts, "GitHub: "+v)
	}
	for _, other := range c.Links.Other {
		if other != "" {
			parts = append(parts, other)
		}
	}
	return parts
}

// experienceDetails formats "start - end" (end defaults to Present) and the location.
func experienceDetails(e types.ExperienceEntry) string {
	dates := strings.Trim(types.Deref(e.StartDate)+" - "+types.Or(e.EndDate, PresentLabel), " -")
	return joinNonEmpty(", ", dates, types.Deref(e.Location))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
