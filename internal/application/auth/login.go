package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/user"
)

const TokenTypeBearer = "bearer"

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   *int   `json:"expires_in"`
}

type Login interface {
	Execute(ctx context.Context, in LoginInput) (LoginOutput, error)
}

type login struct {
	users  domain.Repository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewLogin(users domain.Repository, hasher PasswordHasher, tokens TokenIssuer) Login {
	return &login{users: users, hasher: hasher, tokens: tokens}
}

func (uc *login) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}

	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return LoginOutput{}, ErrInvalidCredentials
		}
		return LoginOutput{}, fmt.Errorf("%w: %v", ErrLogin, err)
	}

	if err := uc.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		return LoginOutput{}, ErrInvalidCredentials
	}

	token, expiresIn, err := uc.tokens.Issue(u.ID)
	if err != nil {
		return LoginOutput{}, fmt.Errorf("%w: %v", ErrLogin, err)
	}

	return LoginOutput{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   expiresIn,
	}, nil
}
