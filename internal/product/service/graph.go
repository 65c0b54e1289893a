package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// optionSet caches global options by lowercased title so a batch resolves
// each title exactly once.
type optionSet struct {
	byTitle map[string]domain.Option
}

func (o *optionSet) get(title string) (domain.Option, bool) {
	opt, ok := o.byTitle[strings.ToLower(strings.TrimSpace(title))]
	return opt, ok
}

// resolveOptions loads the global options matching titles case-insensitively
// and creates the ones that do not exist yet.
func (s *Service) resolveOptions(ctx context.Context, tx *gorm.DB, titles []string) (*optionSet, error) {
	set := &optionSet{byTitle: make(map[string]domain.Option, len(titles))}
	if len(titles) == 0 {
		return set, nil
	}
	existing, err := s.repo.FindOptionsByTitles(ctx, tx, titles)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var missing []domain.Option
	for _, title := range titles {
		key := strings.ToLower(strings.TrimSpace(title))
		if opt, ok := existing[key]; ok {
			set.byTitle[key] = opt
			continue
		}
		opt := domain.Option{
			ID:        s.genID.Generate(),
			Title:     strings.TrimSpace(title),
			CreatedAt: now,
			UpdatedAt: now,
		}
		set.byTitle[key] = opt
		missing = append(missing, opt)
	}
	if err := s.repo.CreateOptions(ctx, tx, missing); err != nil {
		return nil, err
	}
	return set, nil
}

type graphResult struct {
	options  []domain.OptionResponse
	variants []domain.VariantResponse
}

// createGraph writes the product's option values, variants, variant-option
// links and prices. Option values are scoped to the product even though the
// options themselves are global.
func (s *Service) createGraph(
	ctx context.Context,
	tx *gorm.DB,
	product *domain.Product,
	optionInputs []domain.OptionInput,
	variantInputs []domain.VariantInput,
	options *optionSet,
) (*graphResult, error) {
	result := &graphResult{}
	now := time.Now().UTC()

	// declared maps lowercased option title to the product's declared values,
	// keyed by lowercased value.
	type declaredOption struct {
		option domain.Option
		values map[string]domain.OptionValue
	}
	declared := make(map[string]*declaredOption, len(optionInputs))
	respIndex := make(map[string]int, len(optionInputs))
	var optionValues []domain.OptionValue

	for _, input := range optionInputs {
		opt, ok := options.get(input.Title)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrOptionNotFound, input.Title)
		}
		key := strings.ToLower(strings.TrimSpace(input.Title))
		d, seen := declared[key]
		if !seen {
			// Repeated declarations of one title merge into the first.
			d = &declaredOption{option: opt, values: make(map[string]domain.OptionValue, len(input.Values))}
			declared[key] = d
			respIndex[key] = len(result.options)
			result.options = append(result.options, domain.OptionResponse{
				ID:    opt.ID.String(),
				Title: opt.Title,
			})
		}
		resp := &result.options[respIndex[key]]

		for _, raw := range input.Values {
			value := strings.TrimSpace(raw)
			valueKey := strings.ToLower(value)
			if value == "" || d.values[valueKey].ID != 0 {
				continue
			}
			ov := domain.OptionValue{
				ID:        s.genID.Generate(),
				Value:     value,
				OptionID:  opt.ID,
				ProductID: product.ID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			d.values[valueKey] = ov
			optionValues = append(optionValues, ov)
			resp.Values = append(resp.Values, value)
		}
	}
	if err := s.repo.CreateOptionValues(ctx, tx, optionValues); err != nil {
		return nil, err
	}

	variants := make([]domain.Variant, 0, len(variantInputs))
	var links []domain.VariantOption
	for rank, input := range variantInputs {
		variant := domain.Variant{
			ID:              s.genID.Generate(),
			Title:           strings.TrimSpace(input.Title),
			ProductID:       product.ID,
			SKU:             input.SKU,
			Barcode:         input.Barcode,
			EAN:             input.EAN,
			UPC:             input.UPC,
			ManageInventory: true,
			VariantRank:     rank,
			Thumbnail:       input.Thumbnail,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if input.AllowBackorder != nil {
			variant.AllowBackorder = *input.AllowBackorder
		}
		if input.ManageInventory != nil {
			variant.ManageInventory = *input.ManageInventory
		}
		if input.Metadata != nil {
			variant.Metadata = datatypes.JSONMap(input.Metadata)
		}

		for optTitle, rawValue := range input.Options {
			d, ok := declared[strings.ToLower(strings.TrimSpace(optTitle))]
			if !ok {
				return nil, fmt.Errorf("%w: %s", domain.ErrOptionNotFound, optTitle)
			}
			value, ok := d.values[strings.ToLower(strings.TrimSpace(rawValue))]
			if !ok {
				return nil, fmt.Errorf("%w: %s=%s", domain.ErrOptionValueNotFound, optTitle, rawValue)
			}
			links = append(links, domain.VariantOption{
				VariantID:     variant.ID,
				OptionValueID: value.ID,
			})
		}
		variants = append(variants, variant)
	}
	if err := s.repo.CreateVariants(ctx, tx, variants); err != nil {
		return nil, err
	}
	if err := s.repo.CreateVariantOptions(ctx, tx, links); err != nil {
		return nil, err
	}

	variantIDs := make([]snowflake.ID, 0, len(variants))
	for i, variant := range variants {
		if err := s.prices.CreatePrices(ctx, tx, variant.ID, variantInputs[i].Prices); err != nil {
			return nil, err
		}
		variantIDs = append(variantIDs, variant.ID)
	}
	priceRows, err := s.prices.ListForVariants(ctx, tx, variantIDs)
	if err != nil {
		return nil, err
	}
	for i, variant := range variants {
		resp := toVariantResponse(&variant)
		resp.Options = variantInputs[i].Options
		resp.Prices = priceRows[variant.ID]
		result.variants = append(result.variants, resp)
	}
	return result, nil
}

// updateVariants patches existing variants matched by title. Titles with no
// matching variant are logged and skipped rather than failing the update.
func (s *Service) updateVariants(ctx context.Context, tx *gorm.DB, product *domain.Product, inputs []domain.VariantInput) error {
	existing, err := s.repo.VariantsOf(ctx, tx, []snowflake.ID{product.ID})
	if err != nil {
		return err
	}
	byTitle := make(map[string]*domain.Variant, len(existing))
	for i := range existing {
		byTitle[strings.ToLower(existing[i].Title)] = &existing[i]
	}

	for _, input := range inputs {
		variant, ok := byTitle[strings.ToLower(strings.TrimSpace(input.Title))]
		if !ok {
			s.log.Warn("no variant matches title, skipping",
				zap.String("product_id", product.ID.String()),
				zap.String("variant_title", input.Title),
			)
			continue
		}
		if input.SKU != nil {
			variant.SKU = input.SKU
		}
		if input.Barcode != nil {
			variant.Barcode = input.Barcode
		}
		if input.EAN != nil {
			variant.EAN = input.EAN
		}
		if input.UPC != nil {
			variant.UPC = input.UPC
		}
		if input.AllowBackorder != nil {
			variant.AllowBackorder = *input.AllowBackorder
		}
		if input.ManageInventory != nil {
			variant.ManageInventory = *input.ManageInventory
		}
		if input.Thumbnail != nil {
			variant.Thumbnail = input.Thumbnail
		}
		if input.Metadata != nil {
			variant.Metadata = datatypes.JSONMap(input.Metadata)
		}
		variant.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateVariant(ctx, tx, variant); err != nil {
			return err
		}
		if input.Prices != nil {
			if err := s.prices.SyncPrices(ctx, tx, variant.ID, input.Prices); err != nil {
				return err
			}
		}
	}
	return nil
}

func toVariantResponse(v *domain.Variant) domain.VariantResponse {
	resp := domain.VariantResponse{
		ID:              v.ID.String(),
		Title:           v.Title,
		SKU:             v.SKU,
		Barcode:         v.Barcode,
		EAN:             v.EAN,
		UPC:             v.UPC,
		AllowBackorder:  v.AllowBackorder,
		ManageInventory: v.ManageInventory,
		VariantRank:     v.VariantRank,
		Thumbnail:       v.Thumbnail,
	}
	if len(v.Metadata) > 0 {
		resp.Metadata = map[string]any(v.Metadata)
	}
	return resp
}
