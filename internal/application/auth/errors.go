package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLogin              = errors.New("failed to log in")
	ErrEnsureUser         = errors.New("failed to ensure user")
)
