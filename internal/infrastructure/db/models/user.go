package models

import "time"

type User struct {
	ID            uint           `gorm:"primaryKey"`
	Name          string         `gorm:"size:255;not null"`
	Email         string         `gorm:"size:320;not null;uniqueIndex:users_email_unique"`
	Password      string         `gorm:"size:255;not null"`
	Collaborators []Collaborator `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (User) TableName() string {
	return "users"
}
