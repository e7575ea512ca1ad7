package models

import (
	"time"

	"github.com/google/uuid"
)

type Chain struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name             string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	ChainID          string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Network          string    `gorm:"type:varchar(20);not null;default:'mainnet'"`
	Status           string    `gorm:"type:varchar(20);not null;default:'active';index"`
	Type             string    `gorm:"type:varchar(20);not null;default:'evm'"`
	AverageGasPrice  *float64  `gorm:"type:decimal(30,18)"`
	GasVolatility    *float64  `gorm:"type:decimal(30,18)"`
	TransactionCount int64     `gorm:"default:0"`
	ReliabilityScore float64   `gorm:"type:decimal(5,2);default:100"`
	RPCURL           string    `gorm:"type:text;column:rpc_url"`
	Currency         string    `gorm:"type:varchar(20)"`
	Config           string    `gorm:"type:jsonb;default:'{}'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
