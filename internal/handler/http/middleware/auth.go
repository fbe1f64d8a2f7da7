package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/ekaramchari/hr-backend-go/internal/domain/directory"
	"github.com/ekaramchari/hr-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

var errInvalidToken = errors.New("invalid or missing token")

// AuthRequired rejects requests without a verified access token.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, errInvalidToken.Error())
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, errInvalidToken.Error())
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, errInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorFromContext builds the caller identity from verified token claims.
// Must run below AuthRequired.
func ActorFromContext(ctx context.Context) (directory.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return directory.Actor{}, errInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return directory.Actor{}, errInvalidToken
	}
	role, _ := claims["role"].(string)

	return directory.Actor{UserID: userID, Role: role}, nil
}
