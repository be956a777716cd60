package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kit/kit/endpoint"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/jwt"
)

type contextKey struct{}

// NewContext returns a context carrying the identity of the caller.
func NewContext(ctx context.Context, id deptlib.Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (deptlib.Identity, error) {
	v := ctx.Value(contextKey{})
	if v == nil {
		return deptlib.Identity{}, errors.New("no user", errors.Unauthorized())
	}

	id, ok := v.(deptlib.Identity)
	if !ok {
		return deptlib.Identity{}, errors.New("invalid user", errors.Unauthorized())
	}

	return id, nil
}

// Authenticator turns the validated token claims into the identity of the
// caller. The user is always reloaded so that a role change or a deletion
// takes effect before the token expires.
type Authenticator struct {
	repository deptlib.UserRepository

	// admins are emails granted the admin privilege whatever their role.
	admins map[string]bool
}

func NewAuthenticator(repo deptlib.UserRepository, admins []string) *Authenticator {
	a := &Authenticator{
		repository: repo,
		admins:     make(map[string]bool, len(admins)),
	}
	for _, email := range admins {
		a.admins[strings.ToLower(email)] = true
	}
	return a
}

// Identity builds the identity of the user with the given id.
func (a *Authenticator) Identity(userID int) (deptlib.Identity, error) {
	user, err := a.repository.Get(userID)
	if err != nil {
		return deptlib.Identity{}, err
	} else if user.ID == 0 {
		return deptlib.Identity{}, errors.New(fmt.Sprintf("no user for id %d", userID), errors.Unauthorized())
	}

	return deptlib.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		AuthorID: user.AuthorID,
		IsAdmin:  user.Role == deptlib.RoleAdmin || a.admins[strings.ToLower(user.Email)],
	}, nil
}

func (a *Authenticator) Authenticated(next endpoint.Endpoint) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		claims, err := jwt.ClaimsFromContext(ctx)
		if err != nil {
			return nil, err
		}

		id, err := a.Identity(claims.UserID)
		if err != nil {
			return nil, err
		}

		return next(NewContext(ctx, id), req)
	}
}

func (a *Authenticator) Admin(next endpoint.Endpoint) endpoint.Endpoint {
	return a.Authenticated(func(ctx context.Context, req interface{}) (interface{}, error) {
		id, err := FromContext(ctx)
		if err != nil {
			return nil, err
		}

		if !id.IsAdmin {
			return nil, errors.New("admin only", errors.Forbidden())
		}

		return next(ctx, req)
	})
}
