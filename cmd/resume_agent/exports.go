package main

import (
	"fmt"
	"path/filepath"

	"github.com/jonathan/resume-profiler/internal/pipeline"
	"github.com/jonathan/resume-profiler/internal/types"
)

// exportFileNames are the file names used when every format is written to a directory.
var exportFileNames = map[types.ExportFormat]string{
	types.FormatCV:       "cv.md",
	types.FormatReadme:   "README.md",
	types.FormatLinkedIn: "linkedin.json",
	types.FormatLaTeX:    "resume.tex",
}

// singleFormats lists every format except FormatAll, in output order.
var singleFormats = []types.ExportFormat{types.FormatCV, types.FormatReadme, types.FormatLinkedIn, types.FormatLaTeX}

// renderFormat renders one artifact of p.
func renderFormat(wf *pipeline.Workflow, p *types.Profile, format types.ExportFormat) ([]byte, error) {
	switch format {
	case types.FormatLaTeX:
		tex, err := wf.RenderLaTeX(p)
		if err != nil {
			return nil, err
		}
		return []byte(tex), nil
	case types.FormatCV:
		return []byte(wf.BuildExports(p).CVMarkdown), nil
	case types.FormatReadme:
		return []byte(wf.BuildExports(p).GitHubReadme), nil
	case types.FormatLinkedIn:
		return marshalIndent(wf.BuildExports(p).LinkedInProfile)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// writeAllExports renders every artifact of p into dir and returns the written paths.
func writeAllExports(wf *pipeline.Workflow, p *types.Profile, dir string) ([]string, error) {
	paths := make([]string, 0, len(singleFormats))
	for _, format := range singleFormats {
		content, err := renderFormat(wf, p, format)
		if err != nil {
			return paths, fmt.Errorf("failed to render %s: %w", format, err)
		}
		path := filepath.Join(dir, exportFileNames[format])
		if err := writeOutput(nil, path, content); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
