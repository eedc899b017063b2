package middleware

import (
	"context"
	"net/http"

	"github.com/heartmarshall/postcards-home/pkg/ctxutil"
)

type identitySource interface {
	Get(ctx context.Context) string
}

// Identity puts the persisted current identity into the request context.
// Downstream code reads it with ctxutil.IdentityFromCtx and never from the
// store directly.
func Identity(src identitySource) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxutil.WithIdentity(r.Context(), src.Get(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
