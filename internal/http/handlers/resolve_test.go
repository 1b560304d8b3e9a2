package handlers

import (
	"strings"
	"testing"

	"github.com/valyala/fasthttp"

	"pagepulse/internal/analytics"
	dbpkg "pagepulse/internal/db"
)

func publicCtx(uri string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.SetRequestURI(uri)
	req.Header.SetHost("example.com")

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	return &ctx
}

type visitLog struct {
	visits []analytics.Visit
}

func (l *visitLog) record(v analytics.Visit) {
	l.visits = append(l.visits, v)
}

// fakeResolver serves at most one page and tracks lookups and events.
func fakeResolver(page *dbpkg.Page, maintenance bool, log *visitLog) (*resolver, *int) {
	lookups := new(int)
	return &resolver{
		maintenance: func() bool { return maintenance },
		findPage: func(slug string) (*dbpkg.Page, error) {
			*lookups++
			if page != nil && page.Slug == slug {
				return page, nil
			}
			return nil, nil
		},
		site:    func() dbpkg.SiteSettings { return dbpkg.DefaultSiteSettings() },
		counter: func(string) (int64, error) { return 1, nil },
		record:  log.record,
	}, lookups
}

func TestResolveMaintenanceShortCircuits(t *testing.T) {
	log := &visitLog{}
	r, lookups := fakeResolver(&dbpkg.Page{Slug: "about", Body: "<p>hi</p>"}, true, log)

	ctx := publicCtx("http://example.com/about")
	r.handle(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", got)
	}
	if *lookups != 0 {
		t.Errorf("page lookups = %d, want 0", *lookups)
	}
	if len(log.visits) != 0 {
		t.Errorf("events recorded = %d, want 0", len(log.visits))
	}
}

func TestResolveHitRecordsOneEvent(t *testing.T) {
	log := &visitLog{}
	r, _ := fakeResolver(&dbpkg.Page{Slug: "about", Title: "About", Body: "<p>who I am</p>"}, false, log)

	ctx := publicCtx("http://example.com/about")
	r.handle(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusOK {
		t.Errorf("status = %d, want 200", got)
	}
	if !strings.Contains(string(ctx.Response.Body()), "<p>who I am</p>") {
		t.Error("page body not rendered")
	}
	if len(log.visits) != 1 {
		t.Fatalf("events recorded = %d, want 1", len(log.visits))
	}
	if v := log.visits[0]; v.Path != "/about" || v.Status != fasthttp.StatusOK {
		t.Errorf("event = %+v, want path /about status 200", v)
	}
}

func TestResolveMissingPageRecords404(t *testing.T) {
	log := &visitLog{}
	r, _ := fakeResolver(nil, false, log)

	ctx := publicCtx("http://example.com/nope")
	r.handle(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}
	if len(log.visits) != 1 || log.visits[0].Status != fasthttp.StatusNotFound {
		t.Errorf("events = %+v, want one 404", log.visits)
	}
}

func TestResolveLogicFaultKeepsServing(t *testing.T) {
	log := &visitLog{}
	page := &dbpkg.Page{
		Slug:  "about",
		Body:  "<p>still here</p>",
		Logic: "set a 1\nfail boom",
	}
	r, _ := fakeResolver(page, false, log)

	ctx := publicCtx("http://example.com/about")
	r.handle(ctx)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusOK {
		t.Errorf("status = %d, want 200 (degraded page still serves)", got)
	}
	body := string(ctx.Response.Body())
	if !strings.Contains(body, "<p>still here</p>") {
		t.Error("page body missing from degraded render")
	}
	if !strings.Contains(body, "boom") {
		t.Error("fault diagnostic missing from degraded render")
	}

	if len(log.visits) != 2 {
		t.Fatalf("events recorded = %d, want 2 (view then fault)", len(log.visits))
	}
	if log.visits[0].Status != fasthttp.StatusOK {
		t.Errorf("first event status = %d, want 200", log.visits[0].Status)
	}
	if log.visits[1].Status != fasthttp.StatusInternalServerError {
		t.Errorf("second event status = %d, want 500", log.visits[1].Status)
	}
	if log.visits[1].Path != "/about" {
		t.Errorf("fault event path = %q, want /about", log.visits[1].Path)
	}
}

func TestResolveAdminPrefixBoundary(t *testing.T) {
	log := &visitLog{}
	r, _ := fakeResolver(&dbpkg.Page{Slug: "admin-tips", Body: "<p>tips</p>"}, false, log)

	// A public slug that starts with "admin" resolves like any other page.
	ctx := publicCtx("http://example.com/admin-tips")
	r.handle(ctx)
	if got := ctx.Response.StatusCode(); got != fasthttp.StatusOK {
		t.Errorf("/admin-tips status = %d, want 200", got)
	}
	if len(log.visits) != 1 {
		t.Errorf("/admin-tips events = %d, want 1", len(log.visits))
	}

	// The admin area itself leaves the resolver.
	ctx = publicCtx("http://example.com/admin/pages")
	r.handle(ctx)
	if got := ctx.Response.StatusCode(); got != fasthttp.StatusSeeOther {
		t.Errorf("/admin/pages status = %d, want 303", got)
	}
	if len(log.visits) != 1 {
		t.Errorf("admin redirect recorded an event: %+v", log.visits)
	}
}
