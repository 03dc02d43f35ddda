package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

const uniqueViolation = "23505"

func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func translateCollaboratorError(err error) error {
	constraint, ok := uniqueConstraint(err)
	if !ok {
		return err
	}
	switch {
	case strings.Contains(constraint, "email"):
		return collaborator.ErrEmailTaken
	case strings.Contains(constraint, "cpf"):
		return collaborator.ErrCPFTaken
	default:
		return err
	}
}
