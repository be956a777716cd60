package jwt

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/bobinette/deptlib/errors"
)

// CookieName is the cookie checked for a token when the request carries no
// Authorization header.
const CookieName = "jwt"

// Middleware parses and validates the token put in the context by the
// transport, the claims are then available under kitjwt.JWTClaimsContextKey.
func Middleware(key []byte) endpoint.Middleware {
	parser := kitjwt.NewParser(func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.SigningMethodHS256, func() jwt.Claims { return &Claims{} })

	return func(next endpoint.Endpoint) endpoint.Endpoint {
		parsed := parser(next)
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			response, err := parsed(ctx, request)
			if isTokenError(err) {
				return nil, errors.New("unauthorized", errors.Unauthorized(), errors.WithCause(err))
			}
			return response, err
		}
	}
}

func isTokenError(err error) bool {
	switch err {
	case kitjwt.ErrTokenContextMissing,
		kitjwt.ErrTokenInvalid,
		kitjwt.ErrTokenExpired,
		kitjwt.ErrTokenMalformed,
		kitjwt.ErrTokenNotActive,
		kitjwt.ErrUnexpectedSigningMethod,
		jwt.ErrSignatureInvalid:
		return true
	}
	return false
}

// ToHTTPContext moves the token of the request into the context. The bearer
// of the Authorization header wins over the cookie.
func ToHTTPContext() kithttp.RequestFunc {
	fromHeader := kitjwt.HTTPToContext()
	return func(ctx context.Context, r *http.Request) context.Context {
		if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			return fromHeader(ctx, r)
		}

		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return ctx
		}
		return context.WithValue(ctx, kitjwt.JWTTokenContextKey, cookie.Value)
	}
}

// ClaimsFromContext returns the claims validated by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims := ctx.Value(kitjwt.JWTClaimsContextKey)
	if claims == nil {
		return nil, errors.New("no user", errors.Unauthorized())
	}

	c, ok := claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims", errors.Unauthorized())
	}
	return c, nil
}
