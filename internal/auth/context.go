package auth

import (
	"context"
	"errors"

	"slicepoll/internal/users"
)

type ctxKey int

const (
	ctxIdentity ctxKey = iota
	ctxUser
)

// WithPrincipal stores the decoded identity and the provisioned local user
// on the request context.
func WithPrincipal(ctx context.Context, id Identity, u users.User) context.Context {
	ctx = context.WithValue(ctx, ctxIdentity, id)
	ctx = context.WithValue(ctx, ctxUser, u)
	return ctx
}

func IdentityFrom(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(ctxIdentity).(Identity); ok && id.Subject != "" {
		return id, nil
	}
	return Identity{}, errors.New("identity not in context")
}

func UserFrom(ctx context.Context) (users.User, error) {
	if u, ok := ctx.Value(ctxUser).(users.User); ok && u.ID != "" {
		return u, nil
	}
	return users.User{}, errors.New("user not in context")
}
