package render

import (
	"strings"
	"testing"

	dbpkg "pagepulse/internal/db"
)

func TestPageSubstitutesVariables(t *testing.T) {
	page := &dbpkg.Page{
		Slug:  "about",
		Title: "About",
		Body:  "<h1>{{.heading}}</h1><p>Visit {{.visits}}</p>",
	}
	site := dbpkg.SiteSettings{Title: "Example"}

	out, err := Page(page, site, map[string]any{"heading": "Who I Am", "visits": int64(7)}, "")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<h1>Who I Am</h1>", "Visit 7", "<title>About — Example</title>"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, "degraded") {
		t.Error("degraded block present without diagnostic")
	}
}

func TestPageConditionalBody(t *testing.T) {
	page := &dbpkg.Page{
		Slug: "home",
		Body: `{{if .who}}Hello, {{.who}}{{else}}Hello, stranger{{end}}`,
	}
	site := dbpkg.SiteSettings{Title: "Example"}

	out, err := Page(page, site, map[string]any{"who": "admin"}, "")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(string(out), "Hello, admin") {
		t.Error("conditional truthy branch not rendered")
	}

	out, err = Page(page, site, map[string]any{}, "")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(string(out), "Hello, stranger") {
		t.Error("conditional else branch not rendered")
	}
}

func TestPageDiagnosticBlock(t *testing.T) {
	page := &dbpkg.Page{Slug: "home", Body: "<p>body</p>"}
	out, err := Page(page, dbpkg.SiteSettings{Title: "Example"}, nil, "line 2: unknown directive \"explode\"")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "degraded") || !strings.Contains(html, "unknown directive") {
		t.Error("diagnostic block missing")
	}
	if !strings.Contains(html, "<p>body</p>") {
		t.Error("body missing alongside diagnostic")
	}
}

func TestPageBadTemplateFails(t *testing.T) {
	page := &dbpkg.Page{Slug: "home", Body: "{{.unclosed"}
	if _, err := Page(page, dbpkg.SiteSettings{}, nil, ""); err == nil {
		t.Error("Page succeeded on malformed body template")
	}
}

func TestPageNavbarAndChrome(t *testing.T) {
	page := &dbpkg.Page{Slug: "home", Title: "Home", Body: "<p>hi</p>", Styles: "body{color:red}", Scripts: "console.log(1)"}
	site := dbpkg.SiteSettings{
		Title:      "Example",
		Tagline:    "a small site",
		ShowNavbar: true,
		NavLinks:   []dbpkg.NavLink{{Label: "About", URL: "/about"}},
	}
	out, err := Page(page, site, nil, "")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := string(out)
	for _, want := range []string{`href="/about"`, "About", "a small site", "body{color:red}", "console.log(1)"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
