package web

import (
	"embed"
	"html/template"
	"io/fs"
	"sync"
)

//go:embed *.html static
var content embed.FS

var (
	tmpl *template.Template
	once sync.Once
)

// Templates returns the parsed HTML templates for the public frame, the
// fallback pages and the admin UI, embedded at build time.
func Templates() *template.Template {
	once.Do(func() {
		tmpl = template.Must(template.ParseFS(content, "*.html"))
	})
	return tmpl
}

var staticContent, _ = fs.Sub(content, "static")

// StaticFS exposes only the embedded static assets; the template
// sources are not reachable through it.
func StaticFS() fs.FS {
	return staticContent
}
