package middleware

import (
	"net/http"

	"scorecard/internal/domain/auth"
	"scorecard/internal/transport/http/api"
)

// RequireRole admits authenticated callers holding one of roles. With no
// roles listed any authenticated caller passes.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if len(roles) > 0 && !auth.HasRole(user, roles...) {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
