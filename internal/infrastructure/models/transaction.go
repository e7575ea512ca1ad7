package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TransactionHash string    `gorm:"type:varchar(100);not null;index"`
	MerchantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ChainID         string    `gorm:"type:varchar(50);not null;index"`
	ContractAddress string    `gorm:"type:varchar(100);not null;index"`
	GasUsed         float64   `gorm:"type:decimal(30,18);not null;index"`
	GasPrice        *float64  `gorm:"type:decimal(30,18)"`
	TransactionFee  float64   `gorm:"type:decimal(30,18);not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	TransactionType string    `gorm:"type:varchar(50);not null;index"`
	FunctionName    string    `gorm:"type:varchar(100)"`
	FunctionParams  string    `gorm:"type:jsonb;default:'{}'"`
	ErrorMessage    *string   `gorm:"type:text"`
	Region          string    `gorm:"type:varchar(50);index"`
	UserID          string    `gorm:"type:varchar(100);index"`
	RetryCount      int       `gorm:"default:0"`
	Priority        string    `gorm:"type:varchar(50)"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}
