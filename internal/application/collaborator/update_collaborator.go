package collaborator

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

type UpdateCollaboratorInput struct {
	ActorID uint
	ID      uint
	Patch   domain.Patch
}

type UpdateCollaborator interface {
	Execute(ctx context.Context, in UpdateCollaboratorInput) (CollaboratorOutput, error)
}

type updateCollaborator struct {
	repo  domain.Repository
	cache *ListingCache
}

func NewUpdateCollaborator(repo domain.Repository, cache *ListingCache) UpdateCollaborator {
	return &updateCollaborator{repo: repo, cache: cache}
}

func (uc *updateCollaborator) Execute(ctx context.Context, in UpdateCollaboratorInput) (CollaboratorOutput, error) {
	current, err := loadAuthorized(ctx, uc.repo, in.ActorID, in.ID, domain.ActionUpdate)
	if err != nil {
		return CollaboratorOutput{}, err
	}

	merged, err := current.Apply(in.Patch)
	if err != nil {
		return CollaboratorOutput{}, err
	}

	updated, err := uc.repo.Update(ctx, merged)
	if err != nil {
		if verr, ok := domain.ConflictError(err); ok {
			return CollaboratorOutput{}, verr
		}
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return CollaboratorOutput{}, domain.ErrCollaboratorNotFound
		}
		return CollaboratorOutput{}, fmt.Errorf("%w: %v", ErrUpdateCollaborator, err)
	}

	uc.cache.Invalidate(ctx, current.UserID)
	return toOutput(updated), nil
}
