package types

// ExportBundle holds the three rendered artifacts for one profile.
type ExportBundle struct {
	CVMarkdown      string         `json:"cv_markdown"`
	GitHubReadme    string         `json:"github_readme"`
	LinkedInProfile NetworkProfile `json:"linkedin_profile"`
}

// NetworkProfile is the structured payload for a professional-network profile.
type NetworkProfile struct {
	Name       *string             `json:"name"`
	Headline   string              `json:"headline"`
	About      string              `json:"about"`
	Experience []NetworkExperience `json:"experience"`
	Projects   []NetworkProject    `json:"projects"`
	Education  []NetworkEducation  `json:"education"`
	Skills     []string            `json:"skills"`
}

// NetworkExperience is an experience entry reshaped for a network profile.
type NetworkExperience struct {
	Title              *string  `json:"title"`
	Company            *string  `json:"company"`
	StartDate          *string  `json:"start_date"`
	EndDate            string   `json:"end_date"`
	Location           *string  `json:"location"`
	DescriptionBullets []string `json:"description_bullets"`
}

// NetworkProject is a project entry reshaped for a network profile.
type NetworkProject struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Highlights  []string `json:"highlights"`
	URL         *string  `json:"url"`
}

// NetworkEducation is an education entry reshaped for a network profile.
type NetworkEducation struct {
	School    *string `json:"school"`
	Degree    *string `json:"degree"`
	Field     *string `json:"field"`
	StartYear *string `json:"start_year"`
	EndYear   *string `json:"end_year"`
}

// ExportFormat names one renderable artifact.
type ExportFormat string

const (
	FormatCV       ExportFormat = "cv"
	FormatReadme   ExportFormat = "readme"
	FormatLinkedIn ExportFormat = "linkedin"
	FormatLaTeX    ExportFormat = "latex"
	FormatAll      ExportFormat = "all"
)

// ExportFormats lists the accepted values of ExportFormat.
var ExportFormats = []ExportFormat{FormatCV, FormatReadme, FormatLinkedIn, FormatLaTeX, FormatAll}

// ParseExportFormat validates a format name.
func ParseExportFormat(s string) (ExportFormat, bool) {
	for _, f := range ExportFormats {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}
