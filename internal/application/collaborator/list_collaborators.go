package collaborator

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

const PerPage = 20

type ListCollaboratorsInput struct {
	ActorID uint
	Page    int
}

type ListCollaboratorsOutput struct {
	CurrentPage int                  `json:"current_page"`
	Data        []CollaboratorOutput `json:"data"`
	PerPage     int                  `json:"per_page"`
	Total       int64                `json:"total"`
	LastPage    int                  `json:"last_page"`
}

type ListCollaborators interface {
	Execute(ctx context.Context, in ListCollaboratorsInput) (ListCollaboratorsOutput, error)
}

type listCollaborators struct {
	repo  domain.Repository
	cache *ListingCache
}

func NewListCollaborators(repo domain.Repository, cache *ListingCache) ListCollaborators {
	return &listCollaborators{repo: repo, cache: cache}
}

func (uc *listCollaborators) Execute(ctx context.Context, in ListCollaboratorsInput) (ListCollaboratorsOutput, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}

	if raw, ok := uc.cache.get(ctx, in.ActorID, page); ok {
		var cached ListCollaboratorsOutput
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	readAt := uc.cache.generation(in.ActorID)
	result, err := uc.repo.ListByOwner(ctx, in.ActorID, page, PerPage)
	if err != nil {
		return ListCollaboratorsOutput{}, fmt.Errorf("%w: %v", ErrListCollaborators, err)
	}

	out := ListCollaboratorsOutput{
		CurrentPage: page,
		Data:        make([]CollaboratorOutput, 0, len(result.Items)),
		PerPage:     PerPage,
		Total:       result.Total,
		LastPage:    lastPage(result.Total, PerPage),
	}
	for _, c := range result.Items {
		if err := domain.Authorize(in.ActorID, domain.ActionView, c); err != nil {
			return ListCollaboratorsOutput{}, fmt.Errorf("%w: foreign record %d in owner listing", ErrListCollaborators, c.ID)
		}
		out.Data = append(out.Data, toOutput(c))
	}

	if raw, err := json.Marshal(out); err == nil {
		uc.cache.set(ctx, in.ActorID, page, readAt, raw)
	}
	return out, nil
}

func lastPage(total int64, perPage int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
