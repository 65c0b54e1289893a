package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"gorm.io/gorm"
)

func (s *Service) assemble(ctx context.Context, db *gorm.DB, product *domain.Product) (*domain.Response, error) {
	responses, err := s.assembleAll(ctx, db, []domain.Product{*product})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// assembleAll loads the full graph of every product in bulk: variants,
// option values, pivot links and prices are each fetched with one query
// regardless of how many products are being assembled.
func (s *Service) assembleAll(ctx context.Context, db *gorm.DB, products []domain.Product) ([]domain.Response, error) {
	responses := make([]domain.Response, 0, len(products))
	if len(products) == 0 {
		return responses, nil
	}
	productIDs := make([]snowflake.ID, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	variants, err := s.repo.VariantsOf(ctx, db, productIDs)
	if err != nil {
		return nil, err
	}
	variantIDs := make([]snowflake.ID, 0, len(variants))
	variantsByProduct := make(map[snowflake.ID][]domain.Variant)
	for _, v := range variants {
		variantIDs = append(variantIDs, v.ID)
		variantsByProduct[v.ProductID] = append(variantsByProduct[v.ProductID], v)
	}

	optionValues, err := s.repo.OptionValuesOf(ctx, db, productIDs)
	if err != nil {
		return nil, err
	}
	valueByID := make(map[snowflake.ID]domain.OptionValue, len(optionValues))
	valuesByProduct := make(map[snowflake.ID][]domain.OptionValue)
	optionIDSet := make(map[snowflake.ID]bool)
	for _, ov := range optionValues {
		valueByID[ov.ID] = ov
		valuesByProduct[ov.ProductID] = append(valuesByProduct[ov.ProductID], ov)
		optionIDSet[ov.OptionID] = true
	}
	optionIDs := make([]snowflake.ID, 0, len(optionIDSet))
	for id := range optionIDSet {
		optionIDs = append(optionIDs, id)
	}
	optionsByID, err := s.repo.FindOptionsByIDs(ctx, db, optionIDs)
	if err != nil {
		return nil, err
	}

	variantLinks, err := s.repo.VariantOptionsOf(ctx, db, variantIDs)
	if err != nil {
		return nil, err
	}
	linksByVariant := make(map[snowflake.ID][]domain.VariantOption)
	for _, link := range variantLinks {
		linksByVariant[link.VariantID] = append(linksByVariant[link.VariantID], link)
	}

	priceRows, err := s.prices.ListForVariants(ctx, db, variantIDs)
	if err != nil {
		return nil, err
	}

	tagLinks, err := s.repo.TagLinksOf(ctx, db, productIDs)
	if err != nil {
		return nil, err
	}
	tagsByProduct := make(map[snowflake.ID][]string)
	for _, link := range tagLinks {
		tagsByProduct[link.ProductID] = append(tagsByProduct[link.ProductID], link.TagID.String())
	}

	collectionLinks, err := s.repo.CollectionLinksOf(ctx, db, productIDs)
	if err != nil {
		return nil, err
	}
	collectionsByProduct := make(map[snowflake.ID][]string)
	for _, link := range collectionLinks {
		collectionsByProduct[link.ProductID] = append(collectionsByProduct[link.ProductID], link.CollectionID.String())
	}

	channelLinks, err := s.repo.SalesChannelLinksOf(ctx, db, productIDs)
	if err != nil {
		return nil, err
	}
	channelsByProduct := make(map[snowflake.ID][]string)
	for _, link := range channelLinks {
		channelsByProduct[link.ProductID] = append(channelsByProduct[link.ProductID], link.SalesChannelID.String())
	}

	groupLinks, err := s.repo.AttributeGroupLinksOf(ctx, db, productIDs)
	if err != nil {
		return nil, err
	}
	groupIDSet := make(map[snowflake.ID]bool)
	groupsByProduct := make(map[snowflake.ID][]domain.ProductAttributeGroup)
	for _, link := range groupLinks {
		groupIDSet[link.AttributeGroupID] = true
		groupsByProduct[link.ProductID] = append(groupsByProduct[link.ProductID], link)
	}
	groupIDs := make([]snowflake.ID, 0, len(groupIDSet))
	for id := range groupIDSet {
		groupIDs = append(groupIDs, id)
	}
	groupNames := make(map[snowflake.ID]string, len(groupIDs))
	if len(groupIDs) > 0 {
		groups, err := s.attributes.FindGroupsByIDs(ctx, db, groupIDs)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			groupNames[g.ID] = g.Name
		}
	}

	attrValues, err := s.repo.AttributeValuesOf(ctx, db, productIDs)
	if err != nil {
		return nil, err
	}
	attrValuesByProduct := make(map[snowflake.ID][]domain.ProductAttributeValue)
	for _, v := range attrValues {
		attrValuesByProduct[v.ProductID] = append(attrValuesByProduct[v.ProductID], v)
	}

	for i := range products {
		product := &products[i]
		resp := toResponse(product)

		// Options in declared order, values grouped per global option.
		valueOrder := make([]snowflake.ID, 0)
		valuesByOption := make(map[snowflake.ID][]string)
		for _, ov := range valuesByProduct[product.ID] {
			if _, ok := valuesByOption[ov.OptionID]; !ok {
				valueOrder = append(valueOrder, ov.OptionID)
			}
			valuesByOption[ov.OptionID] = append(valuesByOption[ov.OptionID], ov.Value)
		}
		for _, optionID := range valueOrder {
			opt := optionsByID[optionID]
			resp.Options = append(resp.Options, domain.OptionResponse{
				ID:     opt.ID.String(),
				Title:  opt.Title,
				Values: valuesByOption[optionID],
			})
		}

		for _, v := range variantsByProduct[product.ID] {
			vr := toVariantResponse(&v)
			for _, link := range linksByVariant[v.ID] {
				ov, ok := valueByID[link.OptionValueID]
				if !ok {
					continue
				}
				if vr.Options == nil {
					vr.Options = make(map[string]string)
				}
				vr.Options[optionsByID[ov.OptionID].Title] = ov.Value
			}
			vr.Prices = priceRows[v.ID]
			resp.Variants = append(resp.Variants, vr)
		}

		resp.TagIDs = tagsByProduct[product.ID]
		resp.CollectionIDs = collectionsByProduct[product.ID]
		resp.SalesChannelIDs = channelsByProduct[product.ID]
		for _, link := range groupsByProduct[product.ID] {
			resp.AttributeGroups = append(resp.AttributeGroups, domain.AttributeGroupResponse{
				GroupID:  link.AttributeGroupID.String(),
				Name:     groupNames[link.AttributeGroupID],
				Required: link.Required,
				Rank:     link.Rank,
			})
		}
		for _, v := range attrValuesByProduct[product.ID] {
			resp.AttributeValues = append(resp.AttributeValues, domain.AttributeValueResponse{
				GroupID:     v.AttributeGroupID.String(),
				AttributeID: v.AttributeID.String(),
				Value:       v.Value,
			})
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
