package collaborator

import "context"

type Page struct {
	Items []Collaborator
	Total int64
}

type Repository interface {
	Create(ctx context.Context, c Collaborator) (Collaborator, error)
	GetByID(ctx context.Context, id uint) (Collaborator, error)
	Update(ctx context.Context, c Collaborator) (Collaborator, error)
	Delete(ctx context.Context, id uint) error
	ListByOwner(ctx context.Context, ownerID uint, page, perPage int) (Page, error)
}

// ImportStore is the narrow contract the CSV pipeline writes through.
type ImportStore interface {
	FindByEmailAndCPF(ctx context.Context, email, cpf string) (*Collaborator, error)
	Create(ctx context.Context, c Collaborator) (Collaborator, error)
}
