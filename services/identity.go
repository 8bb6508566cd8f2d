// Package services holds the application logic behind the HTTP controllers.
// Every operation returns *Error on failure so controllers can map it to a
// status code.
package services

import (
	"context"
	"errors"

	"go-foodorder/models"
	"go-foodorder/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenManager issues and verifies access tokens. utils.TokenManager implements it.
type TokenManager interface {
	Issue(userID primitive.ObjectID) (string, error)
	Verify(token string) (primitive.ObjectID, error)
}

// IdentityGuard resolves a bearer token to the user it was issued for
type IdentityGuard struct {
	Tokens TokenManager
	Users  repository.UserRepository
}

func NewIdentityGuard(tokens TokenManager, users repository.UserRepository) *IdentityGuard {
	return &IdentityGuard{Tokens: tokens, Users: users}
}

// Authenticate fails with Unauthenticated for a missing, malformed or expired
// token and for a token whose user no longer exists.
func (g *IdentityGuard) Authenticate(ctx context.Context, bearerToken string) (*models.User, error) {
	userID, err := g.Tokens.Verify(bearerToken)
	if err != nil {
		return nil, errUnauthenticated
	}

	user, err := g.Users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errUnauthenticated
	}
	if err != nil {
		return nil, internal(err)
	}
	return user, nil
}

// AuthenticateAdmin additionally requires the admin flag
func (g *IdentityGuard) AuthenticateAdmin(ctx context.Context, bearerToken string) (*models.User, error) {
	user, err := g.Authenticate(ctx, bearerToken)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, errUnauthorized
	}
	return user, nil
}

func requireAdmin(actor *models.User) error {
	if actor == nil {
		return errUnauthenticated
	}
	if !actor.IsAdmin {
		return errUnauthorized
	}
	return nil
}
