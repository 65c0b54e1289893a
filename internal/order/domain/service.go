package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Response, error)
}

type ListRequest struct {
	CustomerID string
	Email      string
	Status     string
	SortBy     string
	OrderBy    string
	Page       int
	Limit      int
}

type Response struct {
	ID           string         `json:"id"`
	DisplayID    int64          `json:"display_id"`
	CustomerID   *string        `json:"customer_id,omitempty"`
	Email        string         `json:"email"`
	Status       string         `json:"status"`
	CurrencyCode string         `json:"currency_code"`
	Total        int64          `json:"total"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

var (
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("order_not_found")
)
