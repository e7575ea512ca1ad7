package models

import (
	"time"

	"github.com/google/uuid"
)

type Merchant struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug         string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description  string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(50);not null;default:'active';index"`
	Plan         string    `gorm:"type:varchar(50);not null;default:'free'"`
	Tier         string    `gorm:"type:varchar(50);not null;default:'basic'"`
	Website      string    `gorm:"type:varchar(255)"`
	Email        string    `gorm:"type:varchar(255)"`
	Country      string    `gorm:"type:varchar(100)"`
	LastActiveAt *time.Time
	IsVerified   bool      `gorm:"default:false"`
	Category     string    `gorm:"type:varchar(100)"`
	Metadata     string    `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}
