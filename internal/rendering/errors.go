package rendering

import "fmt"

// builtinTemplate names the embedded LaTeX template in error messages.
const builtinTemplate = "built-in"

// TemplateError is returned when a LaTeX template cannot be read, parsed or
// executed. Path is empty for the embedded template.
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	path := e.Path
	if path == "" {
		path = builtinTemplate
	}
	if e.Cause != nil {
		return fmt.Sprintf("template error (%s): %s: %v", path, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error (%s): %s", path, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError is returned when a profile cannot be rendered at all.
type RenderError struct {
	Format  string
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render %s: %s", e.Format, e.Message)
}
