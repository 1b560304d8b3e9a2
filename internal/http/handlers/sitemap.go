package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "pagepulse/internal/db"
)

// Sitemap lists every page slug with its last-modified date.
func Sitemap(db *gorm.DB, siteHost string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		infos, err := dbpkg.ListSlugsWithLastModified(db)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to list pages")
			return
		}

		var buf bytes.Buffer
		buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
		buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
		for _, info := range infos {
			loc := "https://" + siteHost + "/"
			if info.Slug != dbpkg.HomeSlug {
				loc += info.Slug
			}
			fmt.Fprintf(&buf, "  <url><loc>%s</loc><lastmod>%s</lastmod></url>\n",
				loc, info.UpdatedAt.Format(time.DateOnly))
		}
		buf.WriteString("</urlset>\n")

		ctx.SetContentType("application/xml; charset=utf-8")
		ctx.SetBody(buf.Bytes())
	}
}

// Robots allows everything except the admin area.
func Robots(siteHost string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("User-agent: *\nDisallow: /admin\nSitemap: https://" + siteHost + "/sitemap.xml\n")
	}
}
