// Package render turns a stored page plus its populated variable map
// into the final HTML document.
package render

import (
	"bytes"
	"html/template"

	dbpkg "pagepulse/internal/db"
	ui "pagepulse/web"
)

// Document is what the public page frame template receives.
type Document struct {
	Site  dbpkg.SiteSettings
	Title string

	Body    template.HTML
	Styles  template.CSS
	Scripts template.JS

	// Diagnostic is non-empty when page logic faulted; the frame shows
	// it in a degraded-mode block above the body.
	Diagnostic string
}

// Page substitutes the variable map into the page's stored body template
// and wraps the result in the site frame. The body is parsed per
// request: page templates live in the store, not in the binary.
func Page(page *dbpkg.Page, site dbpkg.SiteSettings, vars map[string]any, diagnostic string) ([]byte, error) {
	body, err := renderBody(page.Slug, page.Body, vars)
	if err != nil {
		return nil, err
	}

	doc := Document{
		Site:       site,
		Title:      page.Title,
		Body:       body,
		Styles:     template.CSS(page.Styles),
		Scripts:    template.JS(page.Scripts),
		Diagnostic: diagnostic,
	}

	var buf bytes.Buffer
	if err := ui.Templates().ExecuteTemplate(&buf, "frame.html", doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderBody(slug, body string, vars map[string]any) (template.HTML, error) {
	t, err := template.New(slug).Parse(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
