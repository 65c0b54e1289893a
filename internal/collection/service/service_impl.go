package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/collection/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/handle"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Catalog *config.CatalogConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	catalog *config.CatalogConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("collection.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	collection := &domain.Collection{
		ID:        s.genID.Generate(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Metadata != nil {
		collection.Metadata = datatypes.JSONMap(req.Metadata)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := title
		if req.Handle != nil && strings.TrimSpace(*req.Handle) != "" {
			candidate = *req.Handle
		}
		h, err := handle.Generate(ctx, tx, domain.Collection{}.TableName(), candidate, s.catalog.Current().HandleMaxAttempts)
		if err != nil {
			return err
		}
		collection.Handle = h
		return s.repo.Create(ctx, tx, collection)
	})
	if err != nil {
		return nil, err
	}
	resp := toResponse(collection)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	var collection *domain.Collection
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collection, err = s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if collection == nil {
			return domain.ErrNotFound
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return domain.ErrInvalidTitle
			}
			collection.Title = title
		}
		if req.Handle != nil && strings.TrimSpace(*req.Handle) != "" {
			candidate := handle.Slugify(*req.Handle)
			if candidate != collection.Handle {
				h, err := handle.Generate(ctx, tx, domain.Collection{}.TableName(), candidate, s.catalog.Current().HandleMaxAttempts)
				if err != nil {
					return err
				}
				collection.Handle = h
			}
		}
		if req.Metadata != nil {
			collection.Metadata = datatypes.JSONMap(req.Metadata)
		}
		collection.UpdatedAt = time.Now().UTC()
		return s.repo.Update(ctx, tx, collection)
	})
	if err != nil {
		return nil, err
	}
	resp := toResponse(collection)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	collections, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(collections))
	for _, c := range collections {
		resp = append(resp, toResponse(&c))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	collectionID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	collection, err := s.repo.FindByID(ctx, s.db, collectionID)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(collection)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, ids []string) error {
	collectionIDs, err := parseIDs(ids)
	if err != nil {
		return err
	}
	if len(collectionIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.FindByIDs(ctx, tx, collectionIDs)
		if err != nil {
			return err
		}
		if len(found) != len(collectionIDs) {
			return domain.ErrNotFound
		}
		if err := s.repo.UnlinkAll(ctx, tx, collectionIDs); err != nil {
			return err
		}
		return s.repo.SoftDelete(ctx, tx, collectionIDs)
	})
}

func (s *Service) LinkProducts(ctx context.Context, collectionID string, productIDs []string) error {
	id, err := parseID(collectionID)
	if err != nil {
		return err
	}
	products, err := parseIDs(productIDs)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collection, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if collection == nil {
			return domain.ErrNotFound
		}
		if err := s.ensureProductsExist(ctx, tx, products); err != nil {
			return err
		}
		return s.repo.LinkProducts(ctx, tx, id, products)
	})
}

func (s *Service) UnlinkProducts(ctx context.Context, collectionID string, productIDs []string) error {
	id, err := parseID(collectionID)
	if err != nil {
		return err
	}
	products, err := parseIDs(productIDs)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collection, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if collection == nil {
			return domain.ErrNotFound
		}
		return s.repo.UnlinkProducts(ctx, tx, id, products)
	})
}

func (s *Service) ensureProductsExist(ctx context.Context, tx *gorm.DB, ids []snowflake.ID) error {
	if len(ids) == 0 {
		return nil
	}
	var found []snowflake.ID
	err := tx.WithContext(ctx).
		Model(&productdomain.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return err
	}
	known := make(map[snowflake.ID]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, strings.Join(missing, ", "))
	}
	return nil
}

func toResponse(c *domain.Collection) domain.Response {
	resp := domain.Response{
		ID:        c.ID.String(),
		Title:     c.Title,
		Handle:    c.Handle,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
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
