package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	attrdomain "github.com/smallbiznis/storefront/internal/attribute/domain"
	categorydomain "github.com/smallbiznis/storefront/internal/category/domain"
	collectiondomain "github.com/smallbiznis/storefront/internal/collection/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/handle"
	pricedomain "github.com/smallbiznis/storefront/internal/price/domain"
	"github.com/smallbiznis/storefront/internal/product/domain"
	saleschanneldomain "github.com/smallbiznis/storefront/internal/saleschannel/domain"
	tagdomain "github.com/smallbiznis/storefront/internal/tag/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Catalog     *config.CatalogConfigHolder
	Prices      pricedomain.Writer
	Tags        tagdomain.Repository
	Collections collectiondomain.Repository
	Channels    saleschanneldomain.Repository
	Attributes  attrdomain.Repository
	Categories  categorydomain.Repository
}

// Service orchestrates the product graph. Every create, update and delete
// runs inside a single transaction, batch variants included.
type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	catalog     *config.CatalogConfigHolder
	prices      pricedomain.Writer
	tags        tagdomain.Repository
	collections collectiondomain.Repository
	channels    saleschanneldomain.Repository
	attributes  attrdomain.Repository
	categories  categorydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("product.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		catalog:     p.Catalog,
		prices:      p.Prices,
		tags:        p.Tags,
		collections: p.Collections,
		channels:    p.Channels,
		attributes:  p.Attributes,
		categories:  p.Categories,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	responses, err := s.CreateBatch(ctx, []domain.CreateRequest{req})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *Service) CreateBatch(ctx context.Context, reqs []domain.CreateRequest) ([]domain.Response, error) {
	if len(reqs) == 0 {
		return []domain.Response{}, nil
	}
	cfg := s.catalog.Current()
	if len(reqs) > cfg.BatchMaxProducts {
		return nil, domain.ErrBatchTooLarge
	}
	for _, req := range reqs {
		if err := validateCreate(req); err != nil {
			return nil, err
		}
	}

	responses := make([]domain.Response, 0, len(reqs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lookups, err := s.resolveLookupsForCreate(ctx, tx, reqs)
		if err != nil {
			return err
		}
		candidates := make([]string, 0, len(reqs))
		for _, req := range reqs {
			candidates = append(candidates, handleCandidate(req.Title, req.Handle))
		}
		handles, err := handle.NewBatch(ctx, tx, domain.Product{}.TableName(), candidates, cfg.HandleMaxAttempts)
		if err != nil {
			return err
		}
		options, err := s.resolveOptions(ctx, tx, optionTitlesOf(reqs))
		if err != nil {
			return err
		}
		for i, req := range reqs {
			resp, err := s.createOne(ctx, tx, req, candidates[i], handles, options, lookups)
			if err != nil {
				return err
			}
			responses = append(responses, *resp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *Service) createOne(
	ctx context.Context,
	tx *gorm.DB,
	req domain.CreateRequest,
	candidate string,
	handles *handle.Batch,
	options *optionSet,
	lookups *relationLookups,
) (*domain.Response, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:           s.genID.Generate(),
		Title:        strings.TrimSpace(req.Title),
		Status:       domain.StatusDraft,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		ExternalID:   req.ExternalID,
		Discountable: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.Discountable != nil {
		product.Discountable = *req.Discountable
	}
	if req.IsGiftcard != nil {
		product.IsGiftcard = *req.IsGiftcard
	}
	if req.Metadata != nil {
		product.Metadata = datatypes.JSONMap(req.Metadata)
	}
	if req.CategoryID != nil && strings.TrimSpace(*req.CategoryID) != "" {
		categoryID, err := lookups.category(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = &categoryID
	}

	h, err := handles.Generate(candidate)
	if err != nil {
		return nil, err
	}
	product.Handle = h

	if err := s.repo.Create(ctx, tx, product); err != nil {
		return nil, err
	}

	graph, err := s.createGraph(ctx, tx, product, req.Options, req.Variants, options)
	if err != nil {
		return nil, err
	}

	relations, err := s.writeRelations(ctx, tx, product.ID, relationInput{
		TagIDs:          req.TagIDs,
		CollectionIDs:   req.CollectionIDs,
		SalesChannelIDs: req.SalesChannelIDs,
	}, lookups)
	if err != nil {
		return nil, err
	}

	attrs, err := s.writeAttributes(ctx, tx, product.ID, req.AttributeGroups, req.AttributeValues, true)
	if err != nil {
		return nil, err
	}

	resp := toResponse(product)
	resp.Options = graph.options
	resp.Variants = graph.variants
	resp.TagIDs = relations.tagIDs
	resp.CollectionIDs = relations.collectionIDs
	resp.SalesChannelIDs = relations.salesChannelIDs
	resp.AttributeGroups = attrs.groups
	resp.AttributeValues = attrs.values
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	responses, err := s.UpdateBatch(ctx, []domain.UpdateRequest{req})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *Service) UpdateBatch(ctx context.Context, reqs []domain.UpdateRequest) ([]domain.Response, error) {
	if len(reqs) == 0 {
		return []domain.Response{}, nil
	}
	cfg := s.catalog.Current()
	if len(reqs) > cfg.BatchMaxProducts {
		return nil, domain.ErrBatchTooLarge
	}

	ids := make([]snowflake.ID, 0, len(reqs))
	for _, req := range reqs {
		id, err := parseID(req.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	responses := make([]domain.Response, 0, len(reqs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.repo.FindByIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		byID := make(map[snowflake.ID]*domain.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
		for _, id := range ids {
			if byID[id] == nil {
				return domain.ErrNotFound
			}
		}
		lookups, err := s.resolveLookupsForUpdate(ctx, tx, reqs)
		if err != nil {
			return err
		}
		for i, req := range reqs {
			resp, err := s.updateOne(ctx, tx, byID[ids[i]], req, lookups)
			if err != nil {
				return err
			}
			responses = append(responses, *resp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *Service) updateOne(
	ctx context.Context,
	tx *gorm.DB,
	product *domain.Product,
	req domain.UpdateRequest,
	lookups *relationLookups,
) (*domain.Response, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		product.Title = title
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		product.Status = *req.Status
	}
	if req.Subtitle != nil {
		product.Subtitle = req.Subtitle
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Thumbnail != nil {
		product.Thumbnail = req.Thumbnail
	}
	if req.ExternalID != nil {
		product.ExternalID = req.ExternalID
	}
	if req.Discountable != nil {
		product.Discountable = *req.Discountable
	}
	if req.IsGiftcard != nil {
		product.IsGiftcard = *req.IsGiftcard
	}
	if req.Metadata != nil {
		product.Metadata = datatypes.JSONMap(req.Metadata)
	}
	if req.CategoryID != nil {
		if strings.TrimSpace(*req.CategoryID) == "" {
			product.CategoryID = nil
		} else {
			categoryID, err := lookups.category(*req.CategoryID)
			if err != nil {
				return nil, err
			}
			product.CategoryID = &categoryID
		}
	}
	if req.Handle != nil && strings.TrimSpace(*req.Handle) != "" {
		candidate := handle.Slugify(*req.Handle)
		if candidate != product.Handle {
			h, err := handle.Generate(ctx, tx, domain.Product{}.TableName(), candidate, s.catalog.Current().HandleMaxAttempts)
			if err != nil {
				return nil, err
			}
			product.Handle = h
		}
	}
	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, tx, product); err != nil {
		return nil, err
	}

	if req.Variants != nil {
		if err := s.updateVariants(ctx, tx, product, req.Variants); err != nil {
			return nil, err
		}
	}
	if _, err := s.writeRelations(ctx, tx, product.ID, relationInput{
		TagIDs:          req.TagIDs,
		CollectionIDs:   req.CollectionIDs,
		SalesChannelIDs: req.SalesChannelIDs,
	}, lookups); err != nil {
		return nil, err
	}
	if req.AttributeGroups != nil || req.AttributeValues != nil {
		if _, err := s.writeAttributes(ctx, tx, product.ID, req.AttributeGroups, req.AttributeValues, req.AttributeGroups != nil); err != nil {
			return nil, err
		}
	}
	return s.assemble(ctx, tx, product)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return s.assemble(ctx, s.db, product)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	products, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(ctx, s.db, products)
}

func (s *Service) Delete(ctx context.Context, ids []string) error {
	productIDs, err := parseIDs(ids)
	if err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.repo.FindByIDs(ctx, tx, productIDs)
		if err != nil {
			return err
		}
		if len(products) != len(productIDs) {
			return domain.ErrNotFound
		}
		variants, err := s.repo.VariantsOf(ctx, tx, productIDs)
		if err != nil {
			return err
		}
		variantIDs := make([]snowflake.ID, 0, len(variants))
		for _, v := range variants {
			variantIDs = append(variantIDs, v.ID)
		}
		if err := s.prices.DeleteForVariants(ctx, tx, variantIDs); err != nil {
			return err
		}
		if err := s.repo.DeleteVariantOptionsOf(ctx, tx, variantIDs); err != nil {
			return err
		}
		if err := s.repo.DeleteVariants(ctx, tx, variantIDs); err != nil {
			return err
		}
		if err := s.repo.DeleteOptionValuesOf(ctx, tx, productIDs); err != nil {
			return err
		}
		if err := s.repo.DeleteRelationsOf(ctx, tx, productIDs); err != nil {
			return err
		}
		return s.repo.SoftDelete(ctx, tx, productIDs)
	})
}

func validateCreate(req domain.CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return domain.ErrInvalidTitle
	}
	if req.Status != nil && !domain.ValidStatus(*req.Status) {
		return domain.ErrInvalidStatus
	}
	return nil
}

func handleCandidate(title string, explicit *string) string {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return *explicit
	}
	return title
}

func optionTitlesOf(reqs []domain.CreateRequest) []string {
	var titles []string
	seen := make(map[string]bool)
	for _, req := range reqs {
		for _, opt := range req.Options {
			key := strings.ToLower(strings.TrimSpace(opt.Title))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			titles = append(titles, strings.TrimSpace(opt.Title))
		}
	}
	return titles
}

func toResponse(p *domain.Product) domain.Response {
	resp := domain.Response{
		ID:           p.ID.String(),
		Title:        p.Title,
		Handle:       p.Handle,
		Subtitle:     p.Subtitle,
		Description:  p.Description,
		Status:       p.Status,
		Thumbnail:    p.Thumbnail,
		Discountable: p.Discountable,
		IsGiftcard:   p.IsGiftcard,
		ExternalID:   p.ExternalID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.CategoryID != nil {
		categoryID := p.CategoryID.String()
		resp.CategoryID = &categoryID
	}
	if len(p.Metadata) > 0 {
		resp.Metadata = map[string]any(p.Metadata)
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
