package report

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"ledger-reconciler/internal/domain"
)

// RenderMarkdown renders the report as a markdown document: the summary block
// followed by the four tables.
func RenderMarkdown(res *domain.Result) string {
	partials := map[string]string{
		"summary":    "templates/summary.md",
		"matched":    "templates/matched.md",
		"mismatches": "templates/mismatches.md",
		"unmatched":  "templates/unmatched.md",
	}
	return renderTemplate("report", "templates/report.md", partials, BuildViews(res))
}

// renderTemplate is a generic utility to render a main template that depends
// on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
