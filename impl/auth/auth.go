package auth

import (
	"errors"
	"fmt"

	"easywork/entity"
)

type Database interface {
	GetUser(token string) (*entity.User, error)
}

type Auth struct {
	db Database
}

func New(db Database) *Auth {
	return &Auth{db: db}
}

// UserByToken resolves an API token; a user without an organization is rejected.
func (a *Auth) UserByToken(token string) (*entity.User, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	user, err := a.db.GetUser(token)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationId == "" {
		return nil, errors.New("user has no organization")
	}
	return user, nil
}
