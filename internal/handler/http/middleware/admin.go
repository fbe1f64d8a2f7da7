package middleware

import (
	"net/http"

	"github.com/ekaramchari/hr-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a route to elevated roles.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if !actor.Elevated() {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
