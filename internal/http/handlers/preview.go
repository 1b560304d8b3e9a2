package handlers

import (
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

const previewTTL = time.Hour

type previewEntry struct {
	body        []byte
	contentType string
	fetchedAt   time.Time
}

// previewCache is a single-slot TTL cache for the generated site
// preview image. Concurrent misses may both fetch upstream and both
// store; the refresh is idempotent, so the race is benign.
type previewCache struct {
	slot atomic.Pointer[previewEntry]
}

// Preview serves the site preview image, fetching it from the upstream
// generator at most once per TTL.
func Preview(upstreamURL string) fasthttp.RequestHandler {
	cache := &previewCache{}
	client := &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second}

	return func(ctx *fasthttp.RequestCtx) {
		if upstreamURL == "" {
			errResponse(ctx, fasthttp.StatusNotFound, "preview not configured")
			return
		}

		if e := cache.slot.Load(); e != nil && time.Since(e.fetchedAt) < previewTTL {
			ctx.SetContentType(e.contentType)
			ctx.SetBody(e.body)
			return
		}

		status, body, err := client.Get(nil, upstreamURL)
		if err != nil || status != fasthttp.StatusOK {
			// Serve a stale copy over nothing.
			if e := cache.slot.Load(); e != nil {
				ctx.SetContentType(e.contentType)
				ctx.SetBody(e.body)
				return
			}
			errResponse(ctx, fasthttp.StatusBadGateway, "preview unavailable")
			return
		}

		entry := &previewEntry{body: body, contentType: "image/png", fetchedAt: time.Now()}
		cache.slot.Store(entry)
		ctx.SetContentType(entry.contentType)
		ctx.SetBody(entry.body)
	}
}
