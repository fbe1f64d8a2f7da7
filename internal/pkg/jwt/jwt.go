package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies tokens issued by the auth collaborator. This service
// never issues tokens itself.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type jwtService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &jwtService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *jwtService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}
