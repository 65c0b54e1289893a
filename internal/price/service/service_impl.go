package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/price/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Writer {
	return &Service{
		log:   p.Log.Named("price.writer"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreatePrices(ctx context.Context, tx *gorm.DB, variantID snowflake.ID, prices []domain.Input) error {
	rows, err := s.buildRows(prices)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	set := &domain.PriceSet{
		ID: s.genID.Generate(),
		Metadata: datatypes.JSONMap{
			domain.MetadataVariantKey: variantID.String(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateSet(ctx, tx, set); err != nil {
		return err
	}
	for i := range rows {
		rows[i].PriceSetID = set.ID
	}
	return s.repo.CreatePrices(ctx, tx, rows)
}

func (s *Service) SyncPrices(ctx context.Context, tx *gorm.DB, variantID snowflake.ID, prices []domain.Input) error {
	set, err := s.repo.FindSetByVariant(ctx, tx, variantID)
	if err != nil {
		return err
	}
	if set == nil {
		return s.CreatePrices(ctx, tx, variantID, prices)
	}

	rows, err := s.buildRows(prices)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePricesOfSets(ctx, tx, []snowflake.ID{set.ID}); err != nil {
		return err
	}
	for i := range rows {
		rows[i].PriceSetID = set.ID
	}
	return s.repo.CreatePrices(ctx, tx, rows)
}

func (s *Service) DeleteForVariants(ctx context.Context, tx *gorm.DB, variantIDs []snowflake.ID) error {
	setIDs := make([]snowflake.ID, 0, len(variantIDs))
	for _, variantID := range variantIDs {
		set, err := s.repo.FindSetByVariant(ctx, tx, variantID)
		if err != nil {
			return err
		}
		if set != nil {
			setIDs = append(setIDs, set.ID)
		}
	}
	if err := s.repo.DeletePricesOfSets(ctx, tx, setIDs); err != nil {
		return err
	}
	return s.repo.DeleteSets(ctx, tx, setIDs)
}

func (s *Service) ListForVariants(ctx context.Context, db *gorm.DB, variantIDs []snowflake.ID) (map[snowflake.ID][]domain.Response, error) {
	out := make(map[snowflake.ID][]domain.Response, len(variantIDs))
	setOwner := make(map[snowflake.ID]snowflake.ID, len(variantIDs))
	setIDs := make([]snowflake.ID, 0, len(variantIDs))

	for _, variantID := range variantIDs {
		set, err := s.repo.FindSetByVariant(ctx, db, variantID)
		if err != nil {
			return nil, err
		}
		if set == nil {
			continue
		}
		setOwner[set.ID] = variantID
		setIDs = append(setIDs, set.ID)
	}

	prices, err := s.repo.PricesOfSets(ctx, db, setIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range prices {
		variantID, ok := setOwner[p.PriceSetID]
		if !ok {
			continue
		}
		out[variantID] = append(out[variantID], toResponse(p))
	}
	return out, nil
}

func (s *Service) buildRows(prices []domain.Input) ([]domain.Price, error) {
	now := time.Now().UTC()
	rows := make([]domain.Price, 0, len(prices))
	for _, in := range prices {
		if in.Amount < 0 {
			return nil, domain.ErrInvalidAmount
		}
		currency := strings.ToLower(strings.TrimSpace(in.CurrencyCode))
		if currency == "" {
			return nil, domain.ErrInvalidCurrency
		}

		row := domain.Price{
			ID:           s.genID.Generate(),
			Amount:       in.Amount,
			CurrencyCode: currency,
			MinQuantity:  in.MinQuantity,
			MaxQuantity:  in.MaxQuantity,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if in.PriceListID != nil {
			listID, err := snowflake.ParseString(strings.TrimSpace(*in.PriceListID))
			if err != nil || listID == 0 {
				return nil, domain.ErrInvalidID
			}
			row.PriceListID = &listID
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toResponse(p domain.Price) domain.Response {
	resp := domain.Response{
		ID:           p.ID.String(),
		Amount:       p.Amount,
		CurrencyCode: p.CurrencyCode,
		MinQuantity:  p.MinQuantity,
		MaxQuantity:  p.MaxQuantity,
	}
	if p.PriceListID != nil {
		listID := p.PriceListID.String()
		resp.PriceListID = &listID
	}
	return resp
}
