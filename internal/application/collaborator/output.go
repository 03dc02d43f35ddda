package collaborator

import (
	"time"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

type CollaboratorOutput struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toOutput(c domain.Collaborator) CollaboratorOutput {
	return CollaboratorOutput{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		CPF:       c.CPF,
		City:      c.City,
		State:     c.State,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
