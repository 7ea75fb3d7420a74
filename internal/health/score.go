// Package health scores a parsed profile against a fixed completeness rubric.
package health

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-profiler/internal/types"
)

// Rubric points.
const (
	EmailPoints        = 15
	StrongSkillsPoints = 20
	ShortSkillsPoints  = 10
	EducationPoints    = 15
	ExperiencePoints   = 20
	QuantifiedPoints   = 10
	LinksPoints        = 10

	StrongSkillsThreshold = 8
	MaxScore              = 100
	MaxMessages           = 5
)

var quantifiedRE = regexp.MustCompile(`\b\d+(\.\d+)?%?\b`)

// Scorer applies the rubric. It holds no state.
type Scorer struct{}

// Score rates p on contact, skills, education, experience and links. Any
// ResumeHealth already on p is ignored.
func (Scorer) Score(p *types.Profile) types.HealthReport {
	r := types.HealthReport{Strengths: []string{}, Warnings: []string{}, Suggestions: []string{}}

	if p.Contact.Email != nil && *p.Contact.Email != "" {
		r.Score += EmailPoints
		r.Strengths = append(r.Strengths, "Email detected")
	} else {
		r.Warnings = append(r.Warnings, "Missing email")
		r.Suggestions = append(r.Suggestions, "Add a professional email address.")
	}

	switch total := p.Skills.Categories.Total(); {
	case total >= StrongSkillsThreshold:
		r.Score += StrongSkillsPoints
		r.Strengths = append(r.Strengths, "Skills section looks strong")
	case total > 0:
		r.Score += ShortSkillsPoints
		r.Warnings = append(r.Warnings, "Skills list is short")
		r.Suggestions = append(r.Suggestions, "Add more relevant skills (tools, frameworks, databases).")
	default:
		r.Warnings = append(r.Warnings, "Skills not detected")
		r.Suggestions = append(r.Suggestions, "Add a Skills section with clear keywords (e.g., React, Django, MySQL).")
	}

	if len(p.Education) > 0 {
		r.Score += EducationPoints
		r.Strengths = append(r.Strengths, "Education detected")
	} else {
		r.Warnings = append(r.Warnings, "Education not detected")
		r.Suggestions = append(r.Suggestions, "Add Education details (school, degree, years).")
	}

	if len(p.Experience) > 0 {
		r.Score += ExperiencePoints
		r.Strengths = append(r.Strengths, "Experience detected")
		if hasQuantifiedImpact(p.Experience) {
			r.Score += QuantifiedPoints
			r.Strengths = append(r.Strengths, "Includes quantified achievements")
		} else {
			r.Warnings = append(r.Warnings, "Experience lacks quantified impact")
			r.Suggestions = append(r.Suggestions, "Add numbers to achievements (%, time saved, users, revenue, bugs fixed).")
		}
	} else {
		r.Warnings = append(r.Warnings, "Experience not detected")
		r.Suggestions = append(r.Suggestions, "Add any internship, volunteering, freelance, or project experience with bullet points.")
	}

	links := p.Contact.Links
	if types.Deref(links.GitHub) != "" || types.Deref(links.LinkedIn) != "" {
		r.Score += LinksPoints
		r.Strengths = append(r.Strengths, "Professional links detected")
	} else {
		r.Warnings = append(r.Warnings, "No GitHub/LinkedIn detected")
		r.Suggestions = append(r.Suggestions, "Add GitHub and/or LinkedIn links to improve credibility.")
	}

	r.Score = min(r.Score, MaxScore)
	r.Strengths = truncate(r.Strengths)
	r.Warnings = truncate(r.Warnings)
	r.Suggestions = truncate(r.Suggestions)
	return r
}

func hasQuantifiedImpact(entries []types.ExperienceEntry) bool {
	var highlights []string
	for _, e := range entries {
		highlights = append(highlights, e.Highlights...)
	}
	return quantifiedRE.MatchString(strings.Join(highlights, " "))
}

func truncate(msgs []string) []string {
	if len(msgs) > MaxMessages {
		return msgs[:MaxMessages]
	}
	return msgs
}
