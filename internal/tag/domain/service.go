package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, ids []string) error
}

type CreateRequest struct {
	Value    string         `json:"value"`
	Metadata map[string]any `json:"metadata"`
}

type UpdateRequest struct {
	ID       string         `json:"-"`
	Value    *string        `json:"value"`
	Metadata map[string]any `json:"metadata"`
}

type ListRequest struct {
	Value   string
	SortBy  string
	OrderBy string
	Page    int
	Limit   int
}

type Response struct {
	ID        string         `json:"id"`
	Value     string         `json:"value"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

var (
	ErrInvalidValue = errors.New("invalid_value")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("tag_not_found")
)
