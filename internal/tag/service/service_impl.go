package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/tag/domain"
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
		log:   p.Log.Named("tag.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, domain.ErrInvalidValue
	}

	now := time.Now().UTC()
	tag := &domain.Tag{
		ID:        s.genID.Generate(),
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Metadata != nil {
		tag.Metadata = datatypes.JSONMap(req.Metadata)
	}
	if err := s.repo.Create(ctx, s.db, tag); err != nil {
		return nil, err
	}
	resp := toResponse(tag)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	tagID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || tagID == 0 {
		return nil, domain.ErrInvalidID
	}

	var tag *domain.Tag
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag, err = s.repo.FindByID(ctx, tx, tagID)
		if err != nil {
			return err
		}
		if tag == nil {
			return domain.ErrNotFound
		}

		if req.Value != nil {
			value := strings.TrimSpace(*req.Value)
			if value == "" {
				return domain.ErrInvalidValue
			}
			tag.Value = value
		}
		if req.Metadata != nil {
			tag.Metadata = datatypes.JSONMap(req.Metadata)
		}
		tag.UpdatedAt = time.Now().UTC()
		return s.repo.Update(ctx, tx, tag)
	})
	if err != nil {
		return nil, err
	}
	resp := toResponse(tag)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	tags, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, toResponse(&t))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	tagID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || tagID == 0 {
		return nil, domain.ErrInvalidID
	}
	tag, err := s.repo.FindByID(ctx, s.db, tagID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(tag)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, ids []string) error {
	tagIDs := make([]snowflake.ID, 0, len(ids))
	for _, raw := range ids {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || id == 0 {
			return domain.ErrInvalidID
		}
		tagIDs = append(tagIDs, id)
	}
	if len(tagIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.FindByIDs(ctx, tx, tagIDs)
		if err != nil {
			return err
		}
		if len(found) != len(tagIDs) {
			return domain.ErrNotFound
		}
		if err := s.repo.SoftDelete(ctx, tx, tagIDs); err != nil {
			return err
		}
		// Pivot rows referencing a deleted tag are dropped outright.
		return tx.WithContext(ctx).
			Exec(`DELETE FROM product_tags WHERE tag_id IN ?`, tagIDs).Error
	})
}

func toResponse(t *domain.Tag) domain.Response {
	resp := domain.Response{
		ID:        t.ID.String(),
		Value:     t.Value,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if len(t.Metadata) > 0 {
		resp.Metadata = map[string]any(t.Metadata)
	}
	return resp
}
