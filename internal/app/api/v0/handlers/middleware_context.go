package handlers

import (
	"net/http"

	"github.com/argus-sec/argus-portal/internal/domain"
)

// The portal runs in single administrator mode, account management and
// authentication are handled by the surrounding infrastructure.
const portalAdminUserId = "admin"

// AdminUserContext returns a middleware that attaches the built-in admin
// identity to the request context. The identity ends up in the CreatedBy and
// UpdatedBy columns and in the actor field of activity entries.
func AdminUserContext() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := domain.SetUserInfo(r.Context(), &domain.ContextUserInfo{
				Id:      portalAdminUserId,
				IsAdmin: true,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
