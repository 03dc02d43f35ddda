package collaborator

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

type GetCollaboratorInput struct {
	ActorID uint
	ID      uint
}

type GetCollaborator interface {
	Execute(ctx context.Context, in GetCollaboratorInput) (CollaboratorOutput, error)
}

type getCollaborator struct {
	repo domain.Repository
}

func NewGetCollaborator(repo domain.Repository) GetCollaborator {
	return &getCollaborator{repo: repo}
}

func (uc *getCollaborator) Execute(ctx context.Context, in GetCollaboratorInput) (CollaboratorOutput, error) {
	c, err := loadAuthorized(ctx, uc.repo, in.ActorID, in.ID, domain.ActionView)
	if err != nil {
		return CollaboratorOutput{}, err
	}
	return toOutput(c), nil
}

func loadAuthorized(ctx context.Context, repo domain.Repository, actorID, id uint, action domain.Action) (domain.Collaborator, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return domain.Collaborator{}, domain.ErrCollaboratorNotFound
		}
		return domain.Collaborator{}, fmt.Errorf("%w: %v", ErrGetCollaborator, err)
	}
	if err := domain.Authorize(actorID, action, c); err != nil {
		return domain.Collaborator{}, err
	}
	return c, nil
}
