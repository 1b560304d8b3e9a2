package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "pagepulse/internal/db"
)

// PagesList shows every stored page for editing.
func PagesList(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		pages, err := dbpkg.ListPages(db)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load pages")
			return
		}
		renderTemplate(ctx, fasthttp.StatusOK, "pages.html", map[string]any{
			"Site":  dbpkg.LoadSiteSettings(db),
			"Pages": pages,
		})
	}
}

// PageEditForm shows the editor, blank for a new page or prefilled when
// a slug is given.
func PageEditForm(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		page := &dbpkg.Page{}
		if slug := string(ctx.QueryArgs().Peek("slug")); slug != "" {
			found, err := dbpkg.FindPage(db, dbpkg.NormalizeSlug(slug))
			if err != nil {
				errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load page")
				return
			}
			if found != nil {
				page = found
			}
		}
		renderTemplate(ctx, fasthttp.StatusOK, "page_edit.html", map[string]any{
			"Site": dbpkg.LoadSiteSettings(db),
			"Page": page,
		})
	}
}

// PageSave upserts a page by slug: a full replace of the mutable fields,
// last writer wins.
func PageSave(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		args := ctx.PostArgs()
		page := dbpkg.Page{
			Slug:    string(args.Peek("slug")),
			Title:   string(args.Peek("title")),
			Body:    string(args.Peek("body")),
			Styles:  string(args.Peek("styles")),
			Scripts: string(args.Peek("scripts")),
			Logic:   string(args.Peek("logic")),
		}
		if page.Slug == "" {
			errResponse(ctx, fasthttp.StatusBadRequest, "slug is required")
			return
		}
		if err := dbpkg.UpsertPage(db, &page); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to save page")
			return
		}
		ctx.Redirect("/admin/pages", fasthttp.StatusSeeOther)
	}
}

func PageDelete(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		slug := string(ctx.PostArgs().Peek("slug"))
		if slug == "" {
			errResponse(ctx, fasthttp.StatusBadRequest, "slug is required")
			return
		}
		if err := dbpkg.DeletePage(db, slug); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete page")
			return
		}
		ctx.Redirect("/admin/pages", fasthttp.StatusSeeOther)
	}
}

// SettingsPage shows maintenance and branding settings.
func SettingsPage(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		var m dbpkg.MaintenanceSettings
		if _, err := dbpkg.GetSetting(db, dbpkg.SettingMaintenance, &m); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to load settings")
			return
		}
		renderTemplate(ctx, fasthttp.StatusOK, "settings.html", map[string]any{
			"Site":        dbpkg.LoadSiteSettings(db),
			"Maintenance": m,
		})
	}
}

// SaveMaintenance flips the global maintenance flag.
func SaveMaintenance(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		m := dbpkg.MaintenanceSettings{
			Active: string(ctx.PostArgs().Peek("active")) == "1",
		}
		if err := dbpkg.UpsertSetting(db, dbpkg.SettingMaintenance, m); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to save settings")
			return
		}
		ctx.Redirect("/admin/settings", fasthttp.StatusSeeOther)
	}
}

// SaveSiteSettings replaces the branding document, keeping existing nav
// links.
func SaveSiteSettings(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		site := dbpkg.LoadSiteSettings(db)
		site.Title = string(ctx.PostArgs().Peek("title"))
		site.Tagline = string(ctx.PostArgs().Peek("tagline"))
		site.ShowNavbar = string(ctx.PostArgs().Peek("show_navbar")) == "1"
		if err := dbpkg.UpsertSetting(db, dbpkg.SettingSite, site); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to save settings")
			return
		}
		ctx.Redirect("/admin/settings", fasthttp.StatusSeeOther)
	}
}

// AddNavLink appends one navigation link to the branding document.
func AddNavLink(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		link := dbpkg.NavLink{
			Label: string(ctx.PostArgs().Peek("label")),
			URL:   string(ctx.PostArgs().Peek("url")),
		}
		if link.Label == "" || link.URL == "" {
			errResponse(ctx, fasthttp.StatusBadRequest, "label and url are required")
			return
		}
		if err := dbpkg.PushNavLink(db, link); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to save nav link")
			return
		}
		ctx.Redirect("/admin/settings", fasthttp.StatusSeeOther)
	}
}
