package middleware

import (
	"net/http"

	"github.com/mantomate/storefront-backend/pkg/logger"
	"github.com/mantomate/storefront-backend/pkg/viewcache"
)

const cacheHeader = "X-Cache"

// ViewCache serves a per-customer GET view from Redis when present and stores
// successful renders otherwise. Cache failures degrade to a normal render.
func ViewCache(cache *viewcache.Cache, view viewcache.View, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := UserIDFromContext(r.Context())
			if r.Method != http.MethodGet || principal == "" || !cache.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			body, hit, err := cache.Get(r.Context(), view, principal)
			if err != nil {
				logWarn(r, logg, "view_cache.read_failed", view, err)
			}
			if hit {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(cacheHeader, "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}

			w.Header().Set(cacheHeader, "MISS")
			rec := newResponseCapture(w)
			next.ServeHTTP(rec, r)
			if rec.Status() != http.StatusOK {
				return
			}
			if err := cache.Put(r.Context(), view, principal, rec.body.Bytes()); err != nil {
				logWarn(r, logg, "view_cache.write_failed", view, err)
			}
		})
	}
}

func logWarn(r *http.Request, logg *logger.Logger, msg string, view viewcache.View, err error) {
	if logg == nil {
		return
	}
	ctx := logg.WithFields(r.Context(), map[string]any{"view": string(view), "error": err.Error()})
	logg.Warn(ctx, msg)
}
