package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/attribute/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("attribute.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateGroup(ctx context.Context, req domain.CreateGroupRequest) (*domain.GroupResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	attributeIDs, err := parseIDs(req.AttributeIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	group := &domain.AttributeGroup{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Metadata != nil {
		group.Metadata = datatypes.JSONMap(req.Metadata)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(attributeIDs) > 0 {
			if err := s.ensureAttributesExist(ctx, tx, attributeIDs); err != nil {
				return err
			}
		}
		if err := s.repo.CreateGroup(ctx, tx, group); err != nil {
			return err
		}
		return s.repo.Assign(ctx, tx, group.ID, attributeIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.groupResponse(ctx, group)
}

func (s *Service) ListGroups(ctx context.Context, req domain.ListGroupsRequest) ([]domain.GroupResponse, error) {
	groups, err := s.repo.ListGroups(ctx, s.db, req)
	if err != nil {
		return nil, err
	}

	groupIDs := make([]snowflake.ID, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}
	attributes, err := s.repo.AttributesOfGroups(ctx, s.db, groupIDs)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.GroupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(&g, attributes[g.ID]))
	}
	return resp, nil
}

func (s *Service) GetGroup(ctx context.Context, id string) (*domain.GroupResponse, error) {
	groupID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	group, err := s.repo.FindGroupByID(ctx, s.db, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound
	}
	return s.groupResponse(ctx, group)
}

func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	groupID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := s.repo.FindGroupByID(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return domain.ErrNotFound
		}
		return s.repo.SoftDeleteGroups(ctx, tx, []snowflake.ID{groupID})
	})
}

func (s *Service) AssignAttributes(ctx context.Context, groupID string, attributeIDs []string) (*domain.GroupResponse, error) {
	id, err := parseID(groupID)
	if err != nil {
		return nil, err
	}
	ids, err := parseIDs(attributeIDs)
	if err != nil {
		return nil, err
	}

	var group *domain.AttributeGroup
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err = s.repo.FindGroupByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if group == nil {
			return domain.ErrNotFound
		}
		if err := s.ensureAttributesExist(ctx, tx, ids); err != nil {
			return err
		}
		return s.repo.Assign(ctx, tx, id, ids)
	})
	if err != nil {
		return nil, err
	}
	return s.groupResponse(ctx, group)
}

func (s *Service) UnassignAttributes(ctx context.Context, groupID string, attributeIDs []string) error {
	id, err := parseID(groupID)
	if err != nil {
		return err
	}
	ids, err := parseIDs(attributeIDs)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := s.repo.FindGroupByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if group == nil {
			return domain.ErrNotFound
		}
		return s.repo.Unassign(ctx, tx, id, ids)
	})
}

func (s *Service) CreateAttribute(ctx context.Context, req domain.CreateAttributeRequest) (*domain.AttributeResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	attribute := &domain.Attribute{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description != "" {
			attribute.Description = &description
		}
	}
	if req.Metadata != nil {
		attribute.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.CreateAttribute(ctx, s.db, attribute); err != nil {
		return nil, err
	}
	resp := toAttributeResponse(attribute)
	return &resp, nil
}

func (s *Service) ListAttributes(ctx context.Context, req domain.ListAttributesRequest) ([]domain.AttributeResponse, error) {
	attributes, err := s.repo.ListAttributes(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.AttributeResponse, 0, len(attributes))
	for _, a := range attributes {
		resp = append(resp, toAttributeResponse(&a))
	}
	return resp, nil
}

func (s *Service) ensureAttributesExist(ctx context.Context, tx *gorm.DB, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.repo.FindAttributesByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	known := make(map[snowflake.ID]bool, len(found))
	for _, a := range found {
		known[a.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrAttributeNotFound, strings.Join(missing, ", "))
	}
	return nil
}

func (s *Service) groupResponse(ctx context.Context, group *domain.AttributeGroup) (*domain.GroupResponse, error) {
	attributes, err := s.repo.AttributesOfGroups(ctx, s.db, []snowflake.ID{group.ID})
	if err != nil {
		return nil, err
	}
	resp := toGroupResponse(group, attributes[group.ID])
	return &resp, nil
}

func toGroupResponse(group *domain.AttributeGroup, attributes []domain.Attribute) domain.GroupResponse {
	resp := domain.GroupResponse{
		ID:         group.ID.String(),
		Name:       group.Name,
		Attributes: make([]domain.AttributeResponse, 0, len(attributes)),
		CreatedAt:  group.CreatedAt,
		UpdatedAt:  group.UpdatedAt,
	}
	for _, a := range attributes {
		resp.Attributes = append(resp.Attributes, toAttributeResponse(&a))
	}
	if len(group.Metadata) > 0 {
		resp.Metadata = map[string]any(group.Metadata)
	}
	return resp
}

func toAttributeResponse(a *domain.Attribute) domain.AttributeResponse {
	resp := domain.AttributeResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if len(a.Metadata) > 0 {
		resp.Metadata = map[string]any(a.Metadata)
	}
	return resp
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseIDs(raw []string) ([]snowflake.ID, error) {
	ids := make([]snowflake.ID, 0, len(raw))
	seen := make(map[snowflake.ID]bool, len(raw))
	for _, r := range raw {
		id, err := parseID(r)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
