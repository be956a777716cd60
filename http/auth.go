package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/bobinette/deptlib/endpoints"
	"github.com/bobinette/deptlib/jwt"
	"github.com/bobinette/deptlib/services"
	"github.com/bobinette/deptlib/users"
)

// Guards wraps the endpoints needing a caller: Authenticated for any valid
// user, Admin for administrators.
type Guards struct {
	Authenticated endpoint.Middleware
	Admin         endpoint.Middleware
}

// NewGuards validates the tokens signed with key and loads the caller with
// the authenticator.
func NewGuards(key []byte, authenticator *users.Authenticator) Guards {
	jwtMiddleware := jwt.Middleware(key)
	return Guards{
		Authenticated: endpoint.Chain(jwtMiddleware, authenticator.Authenticated),
		Admin:         endpoint.Chain(jwtMiddleware, authenticator.Admin),
	}
}

func RegisterAuthEndpoints(srv Server, service *services.AuthService, guards Guards) {
	opts := options()

	// Create endpoint
	ep := endpoints.NewAuthEndpoint(service)

	loginHandler := kithttp.NewServer(
		ep.Login,
		decodeLoginRequest,
		encodeLoginResponse,
		opts...,
	)

	registerHandler := kithttp.NewServer(
		guards.Admin(ep.Register),
		decodeRegisterRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	meHandler := kithttp.NewServer(
		guards.Authenticated(ep.Me),
		decodeNoRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Routes
	srv.RegisterHandler("/auth/login", "POST", loginHandler)
	srv.RegisterHandler("/auth/register", "POST", registerHandler)
	srv.RegisterHandler("/auth/me", "GET", meHandler)
}

func decodeLoginRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req endpoints.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	return req, nil
}

// encodeLoginResponse also stores the token in the jwt cookie for browsers.
func encodeLoginResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if res, ok := response.(endpoints.LoginResponse); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     jwt.CookieName,
			Value:    res.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return kithttp.EncodeJSONResponse(ctx, w, response)
}

func decodeRegisterRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var form services.RegisterForm
	if err := decodeJSON(r, &form); err != nil {
		return nil, err
	}

	return form, nil
}
