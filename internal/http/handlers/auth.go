package handlers

import (
	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	dbpkg "pagepulse/internal/db"
)

func LoginForm() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		renderTemplate(ctx, fasthttp.StatusOK, "login.html", map[string]any{})
	}
}

func LoginSubmit(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		username := string(ctx.PostArgs().Peek("username"))
		password := string(ctx.PostArgs().Peek("password"))

		var user dbpkg.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				renderTemplate(ctx, fasthttp.StatusUnauthorized, "login.html", map[string]any{"Error": "Invalid username or password."})
				return
			}
			errResponse(ctx, fasthttp.StatusInternalServerError, "database error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			renderTemplate(ctx, fasthttp.StatusUnauthorized, "login.html", map[string]any{"Error": "Invalid username or password."})
			return
		}

		var c fasthttp.Cookie
		c.SetKey("session_user")
		c.SetValue(username)
		c.SetPath("/")
		c.SetHTTPOnly(true)
		ctx.Response.Header.SetCookie(&c)

		ctx.Redirect("/admin", fasthttp.StatusSeeOther)
	}
}

func Logout() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var c fasthttp.Cookie
		c.SetKey("session_user")
		c.SetValue("")
		c.SetPath("/")
		c.SetMaxAge(-1)
		ctx.Response.Header.SetCookie(&c)
		ctx.Redirect("/admin/login", fasthttp.StatusSeeOther)
	}
}
