package endpoints

import (
	"context"

	"github.com/bobinette/deptlib/services"
	"github.com/bobinette/deptlib/users"
)

type AuthEndpoint struct {
	service *services.AuthService
}

func NewAuthEndpoint(s *services.AuthService) AuthEndpoint {
	return AuthEndpoint{
		service: s,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (ep AuthEndpoint) Login(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(LoginRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	token, err := ep.service.Login(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return LoginResponse{Token: token}, nil
}

func (ep AuthEndpoint) Register(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	form, ok := r.(services.RegisterForm)
	if !ok {
		return nil, errInvalidRequest
	}

	user, err := ep.service.Register(caller, form)
	if err != nil {
		return nil, err
	}

	return created{Data: user}, nil
}

func (ep AuthEndpoint) Me(ctx context.Context, _ interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	return ep.service.Me(caller)
}
