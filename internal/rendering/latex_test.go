package rendering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-profiler/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate_Default(t *testing.T) {
	tmpl, err := parseTemplate("")
	require.NoError(t, err)
	assert.NotNil(t, tmpl)
}

func TestParseTemplate_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`Name: {{.Name}}`), 0o644))

	tmpl, err := parseTemplate(path)
	require.NoError(t, err)
	assert.NotNil(t, tmpl)
}

func TestParseTemplate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantMsg string
	}{
		{name: "missing file", wantMsg: "template file not found"},
		{name: "invalid syntax", content: types.StringPtr(`{{.Name`), wantMsg: "failed to parse template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cv.tex")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			_, err := parseTemplate(path)
			require.Error(t, err)

			var tmplErr *TemplateError
			require.ErrorAs(t, err, &tmplErr)
			assert.Contains(t, tmplErr.Error(), tt.wantMsg)
		})
	}
}

func TestRenderLaTeX_DefaultTemplate(t *testing.T) {
	p := sampleProfile()
	p.Experience[0].Highlights = []string{"Cut costs by 30% & latency by 40%"}

	out, err := RenderLaTeX(p, "")
	require.NoError(t, err)

	assert.Contains(t, out, `\documentclass`)
	assert.Contains(t, out, `\textbf{Jane Doe}`)
	assert.Contains(t, out, `jane@example.com \textbar{} LinkedIn: https://linkedin.com/in/janedoe`)
	assert.Contains(t, out, `\section*{Experience}`)
	assert.Contains(t, out, `\textbf{Software Engineer}, Acme \hfill Present`)
	assert.Contains(t, out, `\item Cut costs by 30\% \& latency by 40\%`)
	assert.Contains(t, out, `\url{https://github.com/janedoe/cpb}`)
	assert.Contains(t, out, `\textbf{ABC University}, BSc in Computer Science \hfill 2018 -- 2022`)
	assert.Contains(t, out, "Python, TypeScript, Django, React")
	assert.Contains(t, out, `\end{document}`)
}

func TestRenderLaTeX_EmptyProfileOmitsSections(t *testing.T) {
	out, err := RenderLaTeX(types.NewProfile(), "")
	require.NoError(t, err)

	assert.Contains(t, out, `\textbf{Your Name}`)
	assert.NotContains(t, out, `\section*{Experience}`)
	assert.NotContains(t, out, `\section*{Projects}`)
	assert.NotContains(t, out, `\section*{Education}`)
	assert.NotContains(t, out, `\section*{Skills}`)
}

func TestRenderLaTeX_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.tex")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Name}}|{{join .Skills "/"}}`), 0o644))

	p := sampleProfile()
	p.Contact.Name = types.StringPtr("Jane_Doe")

	out, err := RenderLaTeX(p, path)
	require.NoError(t, err)
	assert.Equal(t, `Jane\_Doe|Python/TypeScript/Django/React`, out)
}

func TestRenderLaTeX_NilProfile(t *testing.T) {
	_, err := RenderLaTeX(nil, "")
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
}

func TestRenderLaTeX_ExecutionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tex")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Missing}}`), 0o644))

	_, err := RenderLaTeX(sampleProfile(), path)
	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Contains(t, tmplErr.Error(), "failed to execute template")
}
