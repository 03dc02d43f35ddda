package collaborator

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

type CreateCollaboratorInput struct {
	ActorID uint
	Name    string
	Email   string
	CPF     string
	City    string
	State   string
}

type CreateCollaborator interface {
	Execute(ctx context.Context, in CreateCollaboratorInput) (CollaboratorOutput, error)
}

type createCollaborator struct {
	repo  domain.Repository
	cache *ListingCache
}

func NewCreateCollaborator(repo domain.Repository, cache *ListingCache) CreateCollaborator {
	return &createCollaborator{repo: repo, cache: cache}
}

func (uc *createCollaborator) Execute(ctx context.Context, in CreateCollaboratorInput) (CollaboratorOutput, error) {
	c, err := domain.New(in.ActorID, in.Name, in.Email, in.CPF, in.City, in.State)
	if err != nil {
		return CollaboratorOutput{}, err
	}

	created, err := uc.repo.Create(ctx, c)
	if err != nil {
		if verr, ok := domain.ConflictError(err); ok {
			return CollaboratorOutput{}, verr
		}
		return CollaboratorOutput{}, fmt.Errorf("%w: %v", ErrCreateCollaborator, err)
	}

	uc.cache.Invalidate(ctx, created.UserID)
	return toOutput(created), nil
}
