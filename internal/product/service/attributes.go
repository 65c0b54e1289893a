package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	attrdomain "github.com/smallbiznis/storefront/internal/attribute/domain"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"gorm.io/gorm"
)

type attributeResult struct {
	groups []domain.AttributeGroupResponse
	values []domain.AttributeValueResponse
}

// writeAttributes maintains the product's attribute group links and values.
// With replaceLinks the links are rebuilt from the explicit inputs plus any
// group a value references; otherwise values are validated against the links
// already on the product. A value whose (group, attribute) pair is not
// assigned in the attribute module is rejected.
func (s *Service) writeAttributes(
	ctx context.Context,
	tx *gorm.DB,
	productID snowflake.ID,
	groups []domain.AttributeGroupInput,
	values []domain.AttributeValueInput,
	replaceLinks bool,
) (*attributeResult, error) {
	result := &attributeResult{}

	links := make([]domain.ProductAttributeGroup, 0, len(groups))
	linked := make(map[snowflake.ID]bool, len(groups))

	if replaceLinks {
		for i, g := range groups {
			groupID, err := parseID(g.GroupID)
			if err != nil {
				return nil, err
			}
			if linked[groupID] {
				continue
			}
			linked[groupID] = true
			link := domain.ProductAttributeGroup{
				ProductID:        productID,
				AttributeGroupID: groupID,
				Rank:             i,
			}
			if g.Required != nil {
				link.Required = *g.Required
			}
			if g.Rank != nil {
				link.Rank = *g.Rank
			}
			links = append(links, link)
		}
		// Groups only referenced by a value are linked implicitly.
		for _, v := range values {
			groupID, err := parseID(v.GroupID)
			if err != nil {
				return nil, err
			}
			if linked[groupID] {
				continue
			}
			linked[groupID] = true
			links = append(links, domain.ProductAttributeGroup{
				ProductID:        productID,
				AttributeGroupID: groupID,
				Rank:             len(links),
			})
		}
	} else {
		existing, err := s.repo.AttributeGroupLinksOf(ctx, tx, []snowflake.ID{productID})
		if err != nil {
			return nil, err
		}
		links = existing
		for _, link := range existing {
			linked[link.AttributeGroupID] = true
		}
	}

	groupIDs := make([]snowflake.ID, 0, len(links))
	for _, link := range links {
		groupIDs = append(groupIDs, link.AttributeGroupID)
	}
	known, err := s.attributes.FindGroupsByIDs(ctx, tx, groupIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[snowflake.ID]string, len(known))
	for _, g := range known {
		names[g.ID] = g.Name
	}
	var missing []string
	for _, id := range groupIDs {
		if _, ok := names[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrAttributeGroupNotFound, strings.Join(missing, ", "))
	}

	if replaceLinks {
		if err := s.repo.ReplaceAttributeGroupLinks(ctx, tx, productID, links); err != nil {
			return nil, err
		}
	}

	if values != nil {
		rows, echo, err := s.buildAttributeValues(ctx, tx, productID, values, linked)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceAttributeValues(ctx, tx, productID, rows); err != nil {
			return nil, err
		}
		result.values = echo
	}

	for _, link := range links {
		result.groups = append(result.groups, domain.AttributeGroupResponse{
			GroupID:  link.AttributeGroupID.String(),
			Name:     names[link.AttributeGroupID],
			Required: link.Required,
			Rank:     link.Rank,
		})
	}
	return result, nil
}

// buildAttributeValues checks that every value targets a linked group and an
// attribute actually assigned to that group.
func (s *Service) buildAttributeValues(
	ctx context.Context,
	tx *gorm.DB,
	productID snowflake.ID,
	values []domain.AttributeValueInput,
	linked map[snowflake.ID]bool,
) ([]domain.ProductAttributeValue, []domain.AttributeValueResponse, error) {
	rows := make([]domain.ProductAttributeValue, 0, len(values))
	echo := make([]domain.AttributeValueResponse, 0, len(values))
	pairs := make([]attrdomain.Pair, 0, len(values))

	for _, v := range values {
		groupID, err := parseID(v.GroupID)
		if err != nil {
			return nil, nil, err
		}
		attributeID, err := parseID(v.AttributeID)
		if err != nil {
			return nil, nil, err
		}
		if !linked[groupID] {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrAttributeGroupNotLinked, groupID)
		}
		rows = append(rows, domain.ProductAttributeValue{
			ProductID:        productID,
			AttributeGroupID: groupID,
			AttributeID:      attributeID,
			Value:            v.Value,
		})
		pairs = append(pairs, attrdomain.Pair{GroupID: groupID, AttributeID: attributeID})
	}

	assigned, err := s.attributes.ExistingPairs(ctx, tx, pairs)
	if err != nil {
		return nil, nil, err
	}
	for i, pair := range pairs {
		if !assigned[pair] {
			return nil, nil, fmt.Errorf("%w: %s/%s", domain.ErrAttributePairUnknown, pair.GroupID, pair.AttributeID)
		}
		echo = append(echo, domain.AttributeValueResponse{
			GroupID:     rows[i].AttributeGroupID.String(),
			AttributeID: rows[i].AttributeID.String(),
			Value:       rows[i].Value,
		})
	}
	return rows, echo, nil
}
