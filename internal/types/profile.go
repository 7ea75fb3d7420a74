// Package types provides type definitions for structured data used throughout the resume-profiler system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Profile is the structured result of parsing one résumé.
type Profile struct {
	Contact       Contact            `json:"contact"`
	SectionsFound []string           `json:"sections_found"`
	Skills        SkillsResult       `json:"skills"`
	Education     []EducationEntry   `json:"education"`
	Experience    []ExperienceEntry  `json:"experience"`
	Projects      []ProjectEntry     `json:"projects"`
	Confidence    map[string]float64 `json:"confidence"`
	ResumeHealth  *HealthReport      `json:"resume_health,omitempty"`
}

// Links holds the classified URLs found in a document.
type Links struct {
	LinkedIn *string  `json:"linkedin"`
	GitHub   *string  `json:"github"`
	Other    []string `json:"other"`
}

// Contact holds identity and reachability fields.
type Contact struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Links Links   `json:"links"`
}

// ContactResult is the output of contact extraction: the fields plus one confidence per field.
type ContactResult struct {
	Contact    Contact            `json:"contact"`
	Confidence map[string]float64 `json:"confidence"`
}

// SkillsResult is the output of skill extraction.
type SkillsResult struct {
	Categories SkillCategories `json:"categories"`
	Confidence float64         `json:"confidence"`
}

// EducationEntry is one education block. Field is never populated by extraction
// but may be set by a user edit.
type EducationEntry struct {
	School    *string `json:"school"`
	Degree    *string `json:"degree"`
	Field     *string `json:"field"`
	StartYear *string `json:"start_year"`
	EndYear   *string `json:"end_year"`
}

// IsEmpty reports whether every field of the entry is null.
func (e EducationEntry) IsEmpty() bool {
	return e.School == nil && e.Degree == nil && e.Field == nil && e.StartYear == nil && e.EndYear == nil
}

// ExperienceEntry is one position. DateRange keeps the raw date-range line that
// opened the entry; it is never serialized.
type ExperienceEntry struct {
	Title      *string  `json:"title"`
	Company    *string  `json:"company"`
	StartDate  *string  `json:"start_date"`
	EndDate    *string  `json:"end_date"`
	Location   *string  `json:"location"`
	Highlights []string `json:"highlights"`

	DateRange string `json:"-"`
}

// HasContent reports whether the entry carries a title, a company, or at least one highlight.
func (e ExperienceEntry) HasContent() bool {
	return e.Title != nil || e.Company != nil || len(e.Highlights) > 0
}

// ProjectEntry is one project block.
type ProjectEntry struct {
	Name       *string  `json:"name"`
	Summary    *string  `json:"summary"`
	Highlights []string `json:"highlights"`
	TechStack  []string `json:"tech_stack"`
	Links      []string `json:"links"`
}

// HasContent reports whether any field of the project is populated.
func (p ProjectEntry) HasContent() bool {
	return p.Name != nil || p.Summary != nil || len(p.Highlights) > 0 || len(p.TechStack) > 0 || len(p.Links) > 0
}

// HealthReport is the rubric-based quality assessment of a profile.
type HealthReport struct {
	Score       int      `json:"score"`
	Strengths   []string `json:"strengths"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// NewProfile returns a profile whose collections are empty rather than nil,
// so that it serializes with [] instead of null.
func NewProfile() *Profile {
	return &Profile{
		Contact:       Contact{Links: Links{Other: []string{}}},
		SectionsFound: []string{},
		Education:     []EducationEntry{},
		Experience:    []ExperienceEntry{},
		Projects:      []ProjectEntry{},
		Confidence:    map[string]float64{},
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the value of s, or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Or returns the value of s, or fallback when s is nil or empty.
func Or(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
