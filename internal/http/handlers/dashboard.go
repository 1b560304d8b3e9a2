package handlers

import (
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"pagepulse/internal/analytics"
	dbpkg "pagepulse/internal/db"
)

// DashboardPage serves the dashboard shell; the numbers come from the
// JSON endpoints below.
func DashboardPage(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}
		renderTemplate(ctx, fasthttp.StatusOK, "dashboard.html", map[string]any{
			"Site":     dbpkg.LoadSiteSettings(db),
			"Username": user.Username,
		})
	}
}

// filterFromQuery reads the optional single-dimension filter. At most
// one dimension can be active; an unknown dimension is rejected.
func filterFromQuery(ctx *fasthttp.RequestCtx) (analytics.Filter, bool) {
	dim, ok := analytics.ParseDimension(string(ctx.QueryArgs().Peek("dimension")))
	if !ok {
		errResponse(ctx, fasthttp.StatusBadRequest, "unknown filter dimension")
		return analytics.Filter{}, false
	}
	return analytics.Filter{
		Dimension: dim,
		Value:     string(ctx.QueryArgs().Peek("value")),
	}, true
}

func StatsSummary(engine *analytics.Engine) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		f, ok := filterFromQuery(ctx)
		if !ok {
			return
		}
		s, err := engine.Summary(f)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query summary")
			return
		}
		jsonResponse(ctx, map[string]any{
			"total_hits":      s.TotalHits,
			"unique_visitors": s.UniqueVisitors,
			"online_now":      s.OnlineNow,
		})
	}
}

func StatsSeries(engine *analytics.Engine) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		f, ok := filterFromQuery(ctx)
		if !ok {
			return
		}
		series, err := engine.DailySeries(f)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query series")
			return
		}
		jsonResponse(ctx, map[string]any{"series": series})
	}
}

func StatsTopPaths(engine *analytics.Engine) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		f, ok := filterFromQuery(ctx)
		if !ok {
			return
		}
		rows, err := engine.TopPaths(f)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query top paths")
			return
		}
		paths := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			paths = append(paths, map[string]any{"path": r.Path, "count": r.Count})
		}
		jsonResponse(ctx, map[string]any{"paths": paths})
	}
}

func StatsReferrers(engine *analytics.Engine) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		f, ok := filterFromQuery(ctx)
		if !ok {
			return
		}
		rows, err := engine.Referrers(f)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query referrers")
			return
		}
		refs := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			refs = append(refs, map[string]any{
				"referrer":    r.Referrer,
				"count":       r.Count,
				"example_url": r.ExampleURL,
			})
		}
		jsonResponse(ctx, map[string]any{"referrers": refs})
	}
}

func StatsClients(engine *analytics.Engine) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		f, ok := filterFromQuery(ctx)
		if !ok {
			return
		}
		b, err := engine.Clients(f)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query clients")
			return
		}
		jsonResponse(ctx, map[string]any{
			"browsers": b.Browsers,
			"systems":  b.Systems,
			"devices":  b.Devices,
		})
	}
}

func StatsErrors(engine *analytics.Engine) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		events, err := engine.ErrorLog()
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query error log")
			return
		}
		rows := make([]map[string]any, 0, len(events))
		for _, e := range events {
			rows = append(rows, map[string]any{
				"time":     e.CreatedAt.Format(time.RFC3339),
				"path":     e.Path,
				"status":   e.Status,
				"referrer": e.Referrer,
			})
		}
		jsonResponse(ctx, map[string]any{"events": rows})
	}
}
