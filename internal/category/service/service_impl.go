package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/category/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/handle"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:     p.Log.Named("category.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, domain.ErrInvalidValue
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:         s.genID.Generate(),
		Value:      value,
		Status:     domain.StatusActive,
		Visibility: domain.VisibilityPublic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		category.Status = *req.Status
	}
	if req.Visibility != nil {
		if !domain.ValidVisibility(*req.Visibility) {
			return nil, domain.ErrInvalidVisibility
		}
		category.Visibility = *req.Visibility
	}
	if req.ParentID != nil && strings.TrimSpace(*req.ParentID) != "" {
		parentID, err := parseID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		category.ParentID = &parentID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if category.ParentID != nil {
			parent, err := s.repo.FindByID(ctx, tx, *category.ParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.ErrParentNotFound
			}
		}
		candidate := value
		if req.Handle != nil && strings.TrimSpace(*req.Handle) != "" {
			candidate = *req.Handle
		}
		h, err := handle.Generate(ctx, tx, domain.Category{}.TableName(), candidate, s.catalog.Current().HandleMaxAttempts)
		if err != nil {
			return err
		}
		category.Handle = h
		return s.repo.Create(ctx, tx, category)
	})
	if err != nil {
		return nil, err
	}
	resp := toResponse(category)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	var category *domain.Category
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err = s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}

		if req.Value != nil {
			value := strings.TrimSpace(*req.Value)
			if value == "" {
				return domain.ErrInvalidValue
			}
			category.Value = value
		}
		if req.Status != nil {
			if !domain.ValidStatus(*req.Status) {
				return domain.ErrInvalidStatus
			}
			category.Status = *req.Status
		}
		if req.Visibility != nil {
			if !domain.ValidVisibility(*req.Visibility) {
				return domain.ErrInvalidVisibility
			}
			category.Visibility = *req.Visibility
		}
		if req.ParentID != nil {
			if strings.TrimSpace(*req.ParentID) == "" {
				category.ParentID = nil
			} else {
				parentID, err := parseID(*req.ParentID)
				if err != nil {
					return err
				}
				if parentID == category.ID {
					return domain.ErrCircularParent
				}
				parent, err := s.repo.FindByID(ctx, tx, parentID)
				if err != nil {
					return err
				}
				if parent == nil {
					return domain.ErrParentNotFound
				}
				descendant, err := s.isDescendant(ctx, tx, category.ID, parentID)
				if err != nil {
					return err
				}
				if descendant {
					return domain.ErrCircularParent
				}
				category.ParentID = &parentID
			}
		}
		if req.Handle != nil && strings.TrimSpace(*req.Handle) != "" {
			candidate := handle.Slugify(*req.Handle)
			if candidate != category.Handle {
				h, err := handle.Generate(ctx, tx, domain.Category{}.TableName(), candidate, s.catalog.Current().HandleMaxAttempts)
				if err != nil {
					return err
				}
				category.Handle = h
			}
		}
		category.UpdatedAt = time.Now().UTC()
		return s.repo.Update(ctx, tx, category)
	})
	if err != nil {
		return nil, err
	}
	resp := toResponse(category)
	return &resp, nil
}

// isDescendant walks the subtree under root breadth-first and reports
// whether target is part of it.
func (s *Service) isDescendant(ctx context.Context, tx *gorm.DB, root, target snowflake.ID) (bool, error) {
	frontier := []snowflake.ID{root}
	visited := map[snowflake.ID]bool{root: true}
	for len(frontier) > 0 {
		children, err := s.repo.ChildrenOf(ctx, tx, frontier)
		if err != nil {
			return false, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			if child == target {
				return true, nil
			}
			if !visited[child] {
				visited[child] = true
				frontier = append(frontier, child)
			}
		}
	}
	return false, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	categories, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	resp := make([]domain.Response, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toResponse(&c))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	categoryID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(category)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, ids []string) error {
	categoryIDs, err := parseIDs(ids)
	if err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := s.repo.FindByIDs(ctx, tx, categoryIDs)
		if err != nil {
			return err
		}
		if len(categories) != len(categoryIDs) {
			return domain.ErrNotFound
		}

		// Products are unlinked before the usage check so a delete always
		// clears its own references; the check catches rows linked after the
		// unlink ran.
		if err := s.repo.UnlinkProducts(ctx, tx, categoryIDs); err != nil {
			return err
		}
		count, err := s.repo.CountProductsReferencing(ctx, tx, categoryIDs)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrCategoryInUse
		}

		// Orphaned children are promoted to root, not re-hung on an ancestor.
		for _, category := range categories {
			if err := s.repo.Reparent(ctx, tx, category.ID, nil); err != nil {
				return err
			}
		}
		return s.repo.SoftDelete(ctx, tx, categoryIDs)
	})
}

func toResponse(c *domain.Category) domain.Response {
	resp := domain.Response{
		ID:         c.ID.String(),
		Value:      c.Value,
		Handle:     c.Handle,
		Status:     c.Status,
		Visibility: c.Visibility,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.ParentID != nil {
		parent := c.ParentID.String()
		resp.ParentID = &parent
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
