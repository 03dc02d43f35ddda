package auth

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/user"
)

type EnsureUserInput struct {
	Name     string
	Email    string
	Password string
}

type EnsureUserOutput struct {
	ID      uint
	Created bool
}

// EnsureUser creates the account unless one already exists for the email.
type EnsureUser interface {
	Execute(ctx context.Context, in EnsureUserInput) (EnsureUserOutput, error)
}

type ensureUser struct {
	users  domain.Repository
	hasher PasswordHasher
}

func NewEnsureUser(users domain.Repository, hasher PasswordHasher) EnsureUser {
	return &ensureUser{users: users, hasher: hasher}
}

func (uc *ensureUser) Execute(ctx context.Context, in EnsureUserInput) (EnsureUserOutput, error) {
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return EnsureUserOutput{}, fmt.Errorf("%w: %v", ErrEnsureUser, err)
	}

	u, err := domain.NewUser(in.Name, in.Email, hash)
	if err != nil {
		return EnsureUserOutput{}, err
	}

	existing, err := uc.users.GetByEmail(ctx, u.Email)
	switch {
	case err == nil:
		return EnsureUserOutput{ID: existing.ID}, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return EnsureUserOutput{}, fmt.Errorf("%w: %v", ErrEnsureUser, err)
	}

	created, err := uc.users.Create(ctx, u)
	if err != nil {
		return EnsureUserOutput{}, fmt.Errorf("%w: %v", ErrEnsureUser, err)
	}
	return EnsureUserOutput{ID: created.ID, Created: true}, nil
}
