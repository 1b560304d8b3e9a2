package main

import (
	"log"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"pagepulse/internal/analytics"
	"pagepulse/internal/config"
	"pagepulse/internal/db"
	"pagepulse/internal/http/handlers"
	appmw "pagepulse/internal/http/middleware"
	ui "pagepulse/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.StartRetentionWorker(sqlDB)

	if err := db.EnsureBootstrapAdmin(sqlDB, cfg); err != nil {
		log.Fatalf("failed to ensure bootstrap admin: %v", err)
	}

	analytics.InitPrometheusMetrics()

	recorder := analytics.NewRecorder(sqlDB, cfg.RetentionDays)
	engine := analytics.NewEngine(sqlDB)

	r := router.New()
	// Any unrouted method/path pair falls through to the resolver.
	r.HandleMethodNotAllowed = false

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})

	r.ServeFS("/static/{filepath:*}", ui.StaticFS())

	r.GET("/sitemap.xml", handlers.Sitemap(sqlDB, cfg.SiteHost))
	r.GET("/robots.txt", handlers.Robots(cfg.SiteHost))
	r.GET("/preview.png", handlers.Preview(cfg.PreviewImageURL))

	r.GET("/admin/login", handlers.LoginForm())
	r.POST("/admin/login", handlers.LoginSubmit(sqlDB))
	r.POST("/admin/logout", handlers.Logout())

	admin := appmw.AdminAuth(sqlDB, cfg)
	r.GET("/admin", admin(handlers.DashboardPage(sqlDB)))
	r.GET("/admin/pages", admin(handlers.PagesList(sqlDB)))
	r.GET("/admin/pages/edit", admin(handlers.PageEditForm(sqlDB)))
	r.POST("/admin/pages/save", admin(handlers.PageSave(sqlDB)))
	r.POST("/admin/pages/delete", admin(handlers.PageDelete(sqlDB)))

	r.GET("/admin/settings", admin(handlers.SettingsPage(sqlDB)))
	r.POST("/admin/settings/maintenance", admin(handlers.SaveMaintenance(sqlDB)))
	r.POST("/admin/settings/site", admin(handlers.SaveSiteSettings(sqlDB)))
	r.POST("/admin/settings/navlink", admin(handlers.AddNavLink(sqlDB)))

	r.GET("/admin/api/summary", admin(handlers.StatsSummary(engine)))
	r.GET("/admin/api/series", admin(handlers.StatsSeries(engine)))
	r.GET("/admin/api/top-paths", admin(handlers.StatsTopPaths(engine)))
	r.GET("/admin/api/referrers", admin(handlers.StatsReferrers(engine)))
	r.GET("/admin/api/clients", admin(handlers.StatsClients(engine)))
	r.GET("/admin/api/errors", admin(handlers.StatsErrors(engine)))

	r.GET("/admin/metrics", admin(handlers.MetricsExport()))

	// Every other GET/POST path is a public page request.
	r.NotFound = handlers.Resolve(sqlDB, recorder)

	handler := handlers.RequestLogger(r.Handler)

	log.Printf("pagepulse listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
