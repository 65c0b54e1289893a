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

	// Delete removes categories. Products referencing a deleted category are
	// unlinked first, children are re-parented to the deleted node's parent.
	Delete(ctx context.Context, ids []string) error
}

type CreateRequest struct {
	Value      string  `json:"value"`
	Handle     *string `json:"handle"`
	ParentID   *string `json:"parent_id"`
	Status     *string `json:"status"`
	Visibility *string `json:"visibility"`
}

type UpdateRequest struct {
	ID         string  `json:"-"`
	Value      *string `json:"value"`
	Handle     *string `json:"handle"`
	ParentID   *string `json:"parent_id"`
	Status     *string `json:"status"`
	Visibility *string `json:"visibility"`
}

type ListRequest struct {
	Value      string
	ParentID   string
	Status     string
	Visibility string
	SortBy     string
	OrderBy    string
	Page       int
	Limit      int
}

type Response struct {
	ID         string    `json:"id"`
	Value      string    `json:"value"`
	Handle     string    `json:"handle"`
	ParentID   *string   `json:"parent_id,omitempty"`
	Status     string    `json:"status"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var (
	ErrInvalidValue      = errors.New("invalid_value")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidVisibility = errors.New("invalid_visibility")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("category_not_found")
	ErrParentNotFound    = errors.New("category_parent_not_found")
	ErrCircularParent    = errors.New("category_circular_parent")
	ErrCategoryInUse     = errors.New("category_in_use")
)
