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

	// LinkProducts attaches products to the collection, ignoring pairs that
	// are already linked. UnlinkProducts removes the given pairs.
	LinkProducts(ctx context.Context, collectionID string, productIDs []string) error
	UnlinkProducts(ctx context.Context, collectionID string, productIDs []string) error
}

type CreateRequest struct {
	Title    string         `json:"title"`
	Handle   *string        `json:"handle"`
	Metadata map[string]any `json:"metadata"`
}

type UpdateRequest struct {
	ID       string         `json:"-"`
	Title    *string        `json:"title"`
	Handle   *string        `json:"handle"`
	Metadata map[string]any `json:"metadata"`
}

type ListRequest struct {
	Title   string
	Handle  string
	SortBy  string
	OrderBy string
	Page    int
	Limit   int
}

type Response struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Handle    string         `json:"handle"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

var (
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("collection_not_found")
	ErrProductNotFound = errors.New("collection_product_not_found")
)
