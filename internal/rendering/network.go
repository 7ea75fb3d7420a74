package rendering

import (
	"strings"

	"github.com/jonathan/resume-profiler/internal/types"
)

const (
	networkSkillLimit      = 12
	headlineSkillCount     = 3
	toolkitSkillCount      = 8
	aboutProjectCount      = 3
	networkBulletLimit     = 5
	networkHighlightLimit  = 3
	defaultHeadlineRole    = "Software Professional"
	defaultHeadlineSkills  = "Software Engineering"
	defaultAboutRole       = "software professional"
	defaultToolkit         = "modern software tools"
	aboutClosingSentence   = "I enjoy collaborating across teams and continuously improving delivery quality."
	aboutFocusSentenceTail = " focused on building high-quality products and practical solutions."
)

// NetworkProfile builds the structured professional-network payload.
func NetworkProfile(p *types.Profile) types.NetworkProfile {
	skills := p.Skills.Categories.Flatten(networkSkillLimit)

	var latest *types.ExperienceEntry
	if len(p.Experience) > 0 {
		latest = &p.Experience[0]
	}

	out := types.NetworkProfile{
		Name:       p.Contact.Name,
		Headline:   headline(latest, skills),
		About:      about(p, latest, skills),
		Experience: make([]types.NetworkExperience, 0, len(p.Experience)),
		Projects:   make([]types.NetworkProject, 0, len(p.Projects)),
		Education:  make([]types.NetworkEducation, 0, len(p.Education)),
		Skills:     skills,
	}

	for _, e := range p.Experience {
		out.Experience = append(out.Experience, types.NetworkExperience{
			Title:              e.Title,
			Company:            e.Company,
			StartDate:          e.StartDate,
			EndDate:            types.Or(e.EndDate, PresentLabel),
			Location:           e.Location,
			DescriptionBullets: nonNilStrings(head(e.Highlights, networkBulletLimit)),
		})
	}

	for _, proj := range p.Projects {
		np := types.NetworkProject{
			Name:        proj.Name,
			Description: proj.Summary,
			Highlights:  nonNilStrings(head(proj.Highlights, networkHighlightLimit)),
		}
		if len(proj.Links) > 0 {
			np.URL = types.StringPtr(proj.Links[0])
		}
		out.Projects = append(out.Projects, np)
	}

	for _, e := range p.Education {
		out.Education = append(out.Education, types.NetworkEducation(e))
	}

	return out
}

func headline(latest *types.ExperienceEntry, skills []string) string {
	core := strings.Join(head(skills, headlineSkillCount), " | ")
	if core == "" {
		core = defaultHeadlineSkills
	}

	var title, company string
	if latest != nil {
		title, company = types.Deref(latest.Title), types.Deref(latest.Company)
	}
	switch {
	case title != "" && company != "":
		return title + " at " + company + " | " + core
	case title != "":
		return title + " | " + core
	default:
		return defaultHeadlineRole + " | " + core
	}
}

func about(p *types.Profile, latest *types.ExperienceEntry, skills []string) string {
	role := defaultAboutRole
	if latest != nil {
		role = types.Or(latest.Title, defaultAboutRole)
	}

	toolkit := strings.Join(head(skills, toolkitSkillCount), ", ")
	if toolkit == "" {
		toolkit = defaultToolkit
	}

	sentences := []string{
		"I am a " + role + aboutFocusSentenceTail,
		"My core toolkit includes " + toolkit + ".",
	}

	if latest != nil && len(latest.Highlights) > 0 {
		sentences = append(sentences, "Recent impact: "+latest.Highlights[0])
	}

	var names []string
	for _, proj := range p.Projects {
		if n := types.Deref(proj.Name); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		sentences = append(sentences, "Highlighted projects include: "+strings.Join(head(names, aboutProjectCount), ", ")+".")
	}

	sentences = append(sentences, aboutClosingSentence)
	return strings.Join(sentences, " ")
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
