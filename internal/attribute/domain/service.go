package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*GroupResponse, error)
	ListGroups(ctx context.Context, req ListGroupsRequest) ([]GroupResponse, error)
	GetGroup(ctx context.Context, id string) (*GroupResponse, error)
	DeleteGroup(ctx context.Context, id string) error
	AssignAttributes(ctx context.Context, groupID string, attributeIDs []string) (*GroupResponse, error)
	UnassignAttributes(ctx context.Context, groupID string, attributeIDs []string) error

	CreateAttribute(ctx context.Context, req CreateAttributeRequest) (*AttributeResponse, error)
	ListAttributes(ctx context.Context, req ListAttributesRequest) ([]AttributeResponse, error)
}

type CreateGroupRequest struct {
	Name         string         `json:"name"`
	AttributeIDs []string       `json:"attribute_ids"`
	Metadata     map[string]any `json:"metadata"`
}

type ListGroupsRequest struct {
	Name    string
	SortBy  string
	OrderBy string
	Page    int
	Limit   int
}

type CreateAttributeRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

type ListAttributesRequest struct {
	Name    string
	SortBy  string
	OrderBy string
	Page    int
	Limit   int
}

type GroupResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Attributes []AttributeResponse `json:"attributes"`
	Metadata   map[string]any      `json:"metadata,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type AttributeResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("attribute_group_not_found")
	ErrAttributeNotFound = errors.New("attribute_not_found")
)
