package collaborator

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

type DeleteCollaboratorInput struct {
	ActorID uint
	ID      uint
}

type DeleteCollaborator interface {
	Execute(ctx context.Context, in DeleteCollaboratorInput) error
}

type deleteCollaborator struct {
	repo  domain.Repository
	cache *ListingCache
}

func NewDeleteCollaborator(repo domain.Repository, cache *ListingCache) DeleteCollaborator {
	return &deleteCollaborator{repo: repo, cache: cache}
}

func (uc *deleteCollaborator) Execute(ctx context.Context, in DeleteCollaboratorInput) error {
	current, err := loadAuthorized(ctx, uc.repo, in.ActorID, in.ID, domain.ActionDelete)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, current.ID); err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return domain.ErrCollaboratorNotFound
		}
		return fmt.Errorf("%w: %v", ErrDeleteCollaborator, err)
	}

	uc.cache.Invalidate(ctx, current.UserID)
	return nil
}
