// Package cont carries the authenticated user through a request context.
package cont

import (
	"context"

	"easywork/entity"
)

type ctxKey struct{}

func PutUser(c context.Context, user *entity.User) context.Context {
	return context.WithValue(c, ctxKey{}, user)
}

// GetUser never returns nil; an unauthenticated context yields a user without an organization.
func GetUser(c context.Context) *entity.User {
	user, ok := c.Value(ctxKey{}).(*entity.User)
	if !ok || user == nil {
		return &entity.User{}
	}
	return user
}
