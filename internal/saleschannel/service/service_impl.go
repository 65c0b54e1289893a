package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/saleschannel/domain"
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
		log:   p.Log.Named("saleschannel.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	channel := &domain.SalesChannel{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description != "" {
			channel.Description = &description
		}
	}
	if req.IsDisabled != nil {
		channel.IsDisabled = *req.IsDisabled
	}
	if req.Metadata != nil {
		channel.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Create(ctx, s.db, channel); err != nil {
		return nil, err
	}
	resp := toResponse(channel)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	channel, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		channel.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			channel.Description = nil
		} else {
			channel.Description = &description
		}
	}
	if req.IsDisabled != nil {
		channel.IsDisabled = *req.IsDisabled
	}
	if req.Metadata != nil {
		channel.Metadata = datatypes.JSONMap(req.Metadata)
	}
	channel.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, channel); err != nil {
		return nil, err
	}
	resp := toResponse(channel)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	channels, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(channels))
	for _, c := range channels {
		resp = append(resp, toResponse(&c))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	channelID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	channel, err := s.repo.FindByID(ctx, s.db, channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(channel)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	channelID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		channel, err := s.repo.FindByID(ctx, tx, channelID)
		if err != nil {
			return err
		}
		if channel == nil {
			return domain.ErrNotFound
		}
		if err := s.repo.SoftDelete(ctx, tx, channelID); err != nil {
			return err
		}
		return tx.WithContext(ctx).
			Exec(`DELETE FROM product_sales_channels WHERE sales_channel_id = ?`, channelID).Error
	})
}

func toResponse(c *domain.SalesChannel) domain.Response {
	resp := domain.Response{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsDisabled:  c.IsDisabled,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if len(c.Metadata) > 0 {
		resp.Metadata = map[string]any(c.Metadata)
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
