package models

import "time"

type Collaborator struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:320;not null;uniqueIndex:collaborators_email_unique"`
	CPF       string `gorm:"column:cpf;size:11;not null;uniqueIndex:collaborators_cpf_unique"`
	City      string `gorm:"size:255;not null"`
	State     string `gorm:"size:2;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Collaborator) TableName() string {
	return "collaborators"
}
