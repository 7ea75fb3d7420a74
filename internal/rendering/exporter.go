package rendering

import "github.com/jonathan/resume-profiler/internal/types"

// Export renders all three artifacts for p. It never fails and tolerates any
// combination of missing fields.
func Export(p *types.Profile) types.ExportBundle {
	return types.ExportBundle{
		CVMarkdown:      CVMarkdown(p),
		GitHubReadme:    GitHubReadme(p),
		LinkedInProfile: NetworkProfile(p),
	}
}
