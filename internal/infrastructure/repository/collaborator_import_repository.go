package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

// CollaboratorImportRepository serves the CSV pipeline directly over pgx.
type CollaboratorImportRepository struct {
	pool *pgxpool.Pool
}

func NewCollaboratorImportRepository(pool *pgxpool.Pool) *CollaboratorImportRepository {
	return &CollaboratorImportRepository{pool: pool}
}

const collaboratorColumns = "id, user_id, name, email, cpf, city, state, created_at, updated_at"

func (r *CollaboratorImportRepository) FindByEmailAndCPF(ctx context.Context, email, cpf string) (*domain.Collaborator, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+collaboratorColumns+`
FROM collaborators
WHERE email = $1 AND cpf = $2
ORDER BY id
LIMIT 1
`, email, cpf)

	c, err := scanCollaborator(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find collaborator by email and cpf: %w", err)
	}
	return &c, nil
}

func (r *CollaboratorImportRepository) Create(ctx context.Context, c domain.Collaborator) (domain.Collaborator, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO collaborators (user_id, name, email, cpf, city, state, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
RETURNING `+collaboratorColumns+`
`, int64(c.UserID), c.Name, c.Email, c.CPF, c.City, c.State)

	created, err := scanCollaborator(row)
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("insert collaborator: %w", translateCollaboratorError(err))
	}
	return created, nil
}

func scanCollaborator(row pgx.Row) (domain.Collaborator, error) {
	var (
		c      domain.Collaborator
		id     int64
		userID int64
	)
	if err := row.Scan(&id, &userID, &c.Name, &c.Email, &c.CPF, &c.City, &c.State, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Collaborator{}, err
	}
	c.ID = uint(id)
	c.UserID = uint(userID)
	return c, nil
}
