package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/db/models"
)

type CollaboratorRepository struct {
	db *gorm.DB
}

func NewCollaboratorRepository(db *gorm.DB) *CollaboratorRepository {
	return &CollaboratorRepository{db: db}
}

func (r *CollaboratorRepository) Create(ctx context.Context, c domain.Collaborator) (domain.Collaborator, error) {
	row := toCollaboratorModel(c)
	row.ID = 0

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Collaborator{}, fmt.Errorf("create collaborator: %w", translateCollaboratorError(err))
	}
	return toCollaboratorDomain(row), nil
}

func (r *CollaboratorRepository) GetByID(ctx context.Context, id uint) (domain.Collaborator, error) {
	var row models.Collaborator

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Collaborator{}, domain.ErrCollaboratorNotFound
		}
		return domain.Collaborator{}, fmt.Errorf("get collaborator by id: %w", err)
	}
	return toCollaboratorDomain(row), nil
}

func (r *CollaboratorRepository) Update(ctx context.Context, c domain.Collaborator) (domain.Collaborator, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Collaborator{ID: c.ID}).
		Select("name", "email", "cpf", "city", "state").
		Updates(models.Collaborator{
			Name:  c.Name,
			Email: c.Email,
			CPF:   c.CPF,
			City:  c.City,
			State: c.State,
		})
	if res.Error != nil {
		return domain.Collaborator{}, fmt.Errorf("update collaborator: %w", translateCollaboratorError(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.Collaborator{}, domain.ErrCollaboratorNotFound
	}
	return r.GetByID(ctx, c.ID)
}

func (r *CollaboratorRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Collaborator{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete collaborator: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCollaboratorNotFound
	}
	return nil
}

func (r *CollaboratorRepository) ListByOwner(ctx context.Context, ownerID uint, page, perPage int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}

	owned := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Collaborator{}).Where("user_id = ?", ownerID)
	}

	var total int64
	if err := owned().Count(&total).Error; err != nil {
		return domain.Page{}, fmt.Errorf("count collaborators: %w", err)
	}

	var rows []models.Collaborator
	if err := owned().Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&rows).Error; err != nil {
		return domain.Page{}, fmt.Errorf("list collaborators: %w", err)
	}

	items := make([]domain.Collaborator, 0, len(rows))
	for _, row := range rows {
		items = append(items, toCollaboratorDomain(row))
	}
	return domain.Page{Items: items, Total: total}, nil
}

func toCollaboratorModel(c domain.Collaborator) models.Collaborator {
	return models.Collaborator{
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

func toCollaboratorDomain(row models.Collaborator) domain.Collaborator {
	return domain.Collaborator{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Email:     row.Email,
		CPF:       row.CPF,
		City:      row.City,
		State:     row.State,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
