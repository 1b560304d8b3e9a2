package handlers

import (
	"log"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"pagepulse/internal/analytics"
	dbpkg "pagepulse/internal/db"
	"pagepulse/internal/logic"
	"pagepulse/internal/render"
)

// resolver holds the store and analytics hooks the public flow needs,
// as funcs so the state machine is testable without a database.
type resolver struct {
	maintenance func() bool
	findPage    func(slug string) (*dbpkg.Page, error)
	site        func() dbpkg.SiteSettings
	counter     func(name string) (int64, error)
	record      func(analytics.Visit)
}

// Resolve is the public catch-all handler: check maintenance, look the
// page up by slug, then execute its logic and render. Terminal outputs
// are the rendered page (200), the not-found page (404), the
// maintenance page (503) and the error page (500).
func Resolve(db *gorm.DB, rec *analytics.Recorder) fasthttp.RequestHandler {
	r := &resolver{
		maintenance: func() bool { return dbpkg.MaintenanceActive(db) },
		findPage:    func(slug string) (*dbpkg.Page, error) { return dbpkg.FindPage(db, slug) },
		site:        func() dbpkg.SiteSettings { return dbpkg.LoadSiteSettings(db) },
		counter:     func(name string) (int64, error) { return dbpkg.IncrementCounter(db, name) },
		record:      rec.Record,
	}
	return r.handle
}

func (r *resolver) handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	// Admin paths are not the resolver's business at all. Slugs that
	// merely start with "admin" are ordinary pages.
	if analytics.UnderPrefix(path, analytics.AdminPrefix) {
		ctx.Redirect("/admin", fasthttp.StatusSeeOther)
		return
	}

	// Maintenance gate. No page lookup happened, so nothing is logged.
	if r.maintenance() {
		analytics.ObserveMaintenance()
		renderTemplate(ctx, fasthttp.StatusServiceUnavailable, "maintenance.html", nil)
		return
	}

	slug := dbpkg.NormalizeSlug(path)
	page, err := r.findPage(slug)
	if err != nil {
		// Store connectivity fault: the analytics store is presumed
		// just as unreachable, so answer 503 without logging.
		log.Printf("page lookup failed for %q: %v", slug, err)
		renderTemplate(ctx, fasthttp.StatusServiceUnavailable, "maintenance.html", nil)
		return
	}

	visit := visitFrom(ctx, path)

	if page == nil {
		visit.Status = fasthttp.StatusNotFound
		r.record(visit)
		renderTemplate(ctx, fasthttp.StatusNotFound, "notfound.html", nil)
		return
	}

	visit.Status = fasthttp.StatusOK
	r.record(visit)

	vars, diagnostic := r.runPageLogic(ctx, page, visit)

	html, err := render.Page(page, r.site(), vars, diagnostic)
	if err != nil {
		log.Printf("render failed for %q: %v", slug, err)
		visit.Status = fasthttp.StatusInternalServerError
		r.record(visit)
		renderTemplate(ctx, fasthttp.StatusInternalServerError, "error.html", nil)
		return
	}

	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(html)
}

func visitFrom(ctx *fasthttp.RequestCtx, path string) analytics.Visit {
	return analytics.Visit{
		Path:        path,
		RemoteIP:    ctx.RemoteIP().String(),
		UserAgent:   string(ctx.Request.Header.UserAgent()),
		RawReferrer: string(ctx.Request.Header.Referer()),
		Host:        string(ctx.Host()),
		Campaign:    string(ctx.QueryArgs().Peek("ref")),
	}
}

// runPageLogic executes the page's stored script, if any, against a
// request-bound environment. A fault never aborts the request: the
// variables populated so far survive, a 500 event is recorded for the
// same path, and the diagnostic is handed back for the degraded render.
func (r *resolver) runPageLogic(ctx *fasthttp.RequestCtx, page *dbpkg.Page, visit analytics.Visit) (map[string]any, string) {
	vars := map[string]any{
		"title":    page.Title,
		"slug":     page.Slug,
		"path":     visit.Path,
		"referrer": visit.RawReferrer,
	}
	if page.Logic == "" {
		return vars, ""
	}

	env := &logic.Env{
		Vars:    vars,
		Session: string(ctx.Request.Header.Cookie("session_user")),
		Query: func(name string) string {
			return string(ctx.QueryArgs().Peek(name))
		},
		Header: func(name string) string {
			return string(ctx.Request.Header.Peek(name))
		},
		PageField: func(name string) (string, bool) {
			switch name {
			case "title":
				return page.Title, true
			case "slug":
				return page.Slug, true
			case "updated":
				return page.UpdatedAt.Format("2006-01-02 15:04"), true
			}
			return "", false
		},
		Counter: r.counter,
	}

	if err := logic.Run(page.Logic, env); err != nil {
		log.Printf("page logic fault for %q: %v", page.Slug, err)
		analytics.ObserveLogicFault(page.Slug)

		visit.Status = fasthttp.StatusInternalServerError
		r.record(visit)

		diagnostic := err.Error()
		if f, ok := err.(*logic.Fault); ok {
			diagnostic = f.Trace()
		}
		return env.Vars, diagnostic
	}
	return env.Vars, ""
}
