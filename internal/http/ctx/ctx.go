package ctx

import (
	"github.com/valyala/fasthttp"

	dbpkg "pagepulse/internal/db"
)

const (
	UserKey    = "user"
	SessionKey = "sessionUser"
)

// SetSessionUser stores the raw session username (from the cookie) on
// the request. It is set for public requests too so page logic can read
// who, if anyone, is signed in.
func SetSessionUser(ctx *fasthttp.RequestCtx, username string) {
	ctx.SetUserValue(SessionKey, username)
}

func SessionUserFromCtx(ctx *fasthttp.RequestCtx) (string, bool) {
	v := ctx.UserValue(SessionKey)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func SetUser(ctx *fasthttp.RequestCtx, user *dbpkg.User) {
	ctx.SetUserValue(UserKey, user)
}

func UserFromCtx(ctx *fasthttp.RequestCtx) (*dbpkg.User, bool) {
	v := ctx.UserValue(UserKey)
	if v == nil {
		return nil, false
	}
	u, ok := v.(*dbpkg.User)
	return u, ok
}
