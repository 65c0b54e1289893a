package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusCanceled
}

// Order rows are written by the checkout pipeline; the admin surface only
// reads them and moves their status.
type Order struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	DisplayID    int64             `gorm:"not null;uniqueIndex" json:"display_id"`
	CustomerID   *snowflake.ID     `gorm:"index" json:"customer_id,omitempty"`
	Email        string            `gorm:"type:text;not null" json:"email"`
	Status       string            `gorm:"type:text;not null;default:pending" json:"status"`
	CurrencyCode string            `gorm:"type:text;not null" json:"currency_code"`
	Total        int64             `gorm:"not null;default:0" json:"total"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Order) TableName() string { return "orders" }
