// Package parsing turns normalized résumé lines into a structured profile.
//
// A Parser runs one section splitter and a fixed set of field extractors,
// each injected through an interface so that any single role can be
// replaced. Extractors only see the lines they are given; none of them
// observes another extractor's output.
package parsing

import (
	"github.com/jonathan/resume-profiler/internal/health"
	"github.com/jonathan/resume-profiler/internal/taxonomy"
	"github.com/jonathan/resume-profiler/internal/types"
)

// Canonical section names read by the aggregator.
const (
	SectionSkills     = "skills"
	SectionEducation  = "education"
	SectionExperience = "experience"
	SectionProjects   = "projects"
)

// SectionSplitter groups lines under canonical section names.
type SectionSplitter interface {
	Split(lines []string) *Sections
}

// ContactExtractor reads contact details from the whole document.
type ContactExtractor interface {
	Extract(lines []string) types.ContactResult
}

// SkillsExtractor reads skills from the skills section when hasSection is true
// and from all lines otherwise.
type SkillsExtractor interface {
	Extract(all, section []string, hasSection bool) types.SkillsResult
}

// SectionExtractor reads entries of one kind from a single section.
type SectionExtractor[T any] interface {
	Extract(lines []string) []T
}

// HealthScorer rates an assembled profile.
type HealthScorer interface {
	Score(p *types.Profile) types.HealthReport
}

// ContactFunc adapts a function to ContactExtractor.
type ContactFunc func(lines []string) types.ContactResult

// Extract calls f(lines).
func (f ContactFunc) Extract(lines []string) types.ContactResult { return f(lines) }

// SectionFunc adapts a function to SectionExtractor.
type SectionFunc[T any] func(lines []string) []T

// Extract calls f(lines).
func (f SectionFunc[T]) Extract(lines []string) []T { return f(lines) }

// Parser is the profile aggregator.
type Parser struct {
	splitter   SectionSplitter
	contact    ContactExtractor
	skills     SkillsExtractor
	education  SectionExtractor[types.EducationEntry]
	experience SectionExtractor[types.ExperienceEntry]
	projects   SectionExtractor[types.ProjectEntry]
	scorer     HealthScorer
}

// Option replaces one of the parser's collaborators.
type Option func(*Parser)

// WithSplitter sets the section splitter.
func WithSplitter(s SectionSplitter) Option { return func(p *Parser) { p.splitter = s } }

// WithContactExtractor sets the contact extractor.
func WithContactExtractor(c ContactExtractor) Option { return func(p *Parser) { p.contact = c } }

// WithSkillsExtractor sets the skills extractor.
func WithSkillsExtractor(s SkillsExtractor) Option { return func(p *Parser) { p.skills = s } }

// WithEducationExtractor sets the education extractor.
func WithEducationExtractor(e SectionExtractor[types.EducationEntry]) Option {
	return func(p *Parser) { p.education = e }
}

// WithExperienceExtractor sets the experience extractor.
func WithExperienceExtractor(e SectionExtractor[types.ExperienceEntry]) Option {
	return func(p *Parser) { p.experience = e }
}

// WithProjectExtractor sets the project extractor.
func WithProjectExtractor(e SectionExtractor[types.ProjectEntry]) Option {
	return func(p *Parser) { p.projects = e }
}

// WithHealthScorer sets the health scorer.
func WithHealthScorer(s HealthScorer) Option { return func(p *Parser) { p.scorer = s } }

// NewParser builds a parser with the default heuristic extractors over tables.
func NewParser(tables *taxonomy.Tables, opts ...Option) *Parser {
	p := &Parser{
		splitter:   NewHeaderSplitter(tables),
		contact:    RegexContactExtractor{},
		skills:     NewTaxonomySkillsExtractor(tables),
		education:  BlockEducationExtractor{},
		experience: ScanExperienceExtractor{},
		projects:   NewBlockProjectExtractor(tables),
		scorer:     health.Scorer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the full pipeline over lines. It never fails; missing signals
// show up as null fields, low confidence and health warnings.
func (p *Parser) Parse(lines []string) *types.Profile {
	sections := p.splitter.Split(lines)

	contact := p.contact.Extract(lines)
	skillLines, hasSkills := sections.Get(SectionSkills)
	skills := p.skills.Extract(lines, skillLines, hasSkills)

	profile := types.NewProfile()
	profile.Contact = contact.Contact
	if profile.Contact.Links.Other == nil {
		profile.Contact.Links.Other = []string{}
	}
	profile.SectionsFound = sections.Names()
	profile.Skills = skills
	profile.Education = nonNil(p.education.Extract(sections.Lines(SectionEducation)))
	profile.Experience = nonNil(p.experience.Extract(sections.Lines(SectionExperience)))
	profile.Projects = nonNil(p.projects.Extract(sections.Lines(SectionProjects)))

	for field, c := range contact.Confidence {
		profile.Confidence[field] = c
	}

	report := p.scorer.Score(profile)
	profile.ResumeHealth = &report
	return profile
}

// Rescore recomputes the health report of an edited profile in place.
func (p *Parser) Rescore(profile *types.Profile) types.HealthReport {
	report := p.scorer.Score(profile)
	profile.ResumeHealth = &report
	return report
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
