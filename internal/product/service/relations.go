package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/product/domain"
	"gorm.io/gorm"
)

// relationLookups holds the batch-wide id resolutions for tags, collections,
// sales channels and categories. Resolved once per transaction so every
// product in a batch shares the same lookups.
type relationLookups struct {
	tags        map[string]snowflake.ID
	collections map[string]snowflake.ID
	channels    map[string]snowflake.ID
	categories  map[string]snowflake.ID
}

func (l *relationLookups) category(raw string) (snowflake.ID, error) {
	id, ok := l.categories[strings.TrimSpace(raw)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, raw)
	}
	return id, nil
}

func (s *Service) resolveLookupsForCreate(ctx context.Context, tx *gorm.DB, reqs []domain.CreateRequest) (*relationLookups, error) {
	var tagRaw, collectionRaw, channelRaw, categoryRaw []string
	for _, req := range reqs {
		tagRaw = append(tagRaw, req.TagIDs...)
		collectionRaw = append(collectionRaw, req.CollectionIDs...)
		channelRaw = append(channelRaw, req.SalesChannelIDs...)
		if req.CategoryID != nil && strings.TrimSpace(*req.CategoryID) != "" {
			categoryRaw = append(categoryRaw, *req.CategoryID)
		}
	}
	return s.resolveLookups(ctx, tx, tagRaw, collectionRaw, channelRaw, categoryRaw)
}

func (s *Service) resolveLookupsForUpdate(ctx context.Context, tx *gorm.DB, reqs []domain.UpdateRequest) (*relationLookups, error) {
	var tagRaw, collectionRaw, channelRaw, categoryRaw []string
	for _, req := range reqs {
		tagRaw = append(tagRaw, req.TagIDs...)
		collectionRaw = append(collectionRaw, req.CollectionIDs...)
		channelRaw = append(channelRaw, req.SalesChannelIDs...)
		if req.CategoryID != nil && strings.TrimSpace(*req.CategoryID) != "" {
			categoryRaw = append(categoryRaw, *req.CategoryID)
		}
	}
	return s.resolveLookups(ctx, tx, tagRaw, collectionRaw, channelRaw, categoryRaw)
}

func (s *Service) resolveLookups(ctx context.Context, tx *gorm.DB, tagRaw, collectionRaw, channelRaw, categoryRaw []string) (*relationLookups, error) {
	lookups := &relationLookups{}

	var err error
	lookups.tags, err = resolveIDs(tagRaw, domain.ErrTagNotFound, func(ids []snowflake.ID) (map[snowflake.ID]bool, error) {
		tags, err := s.tags.FindByIDs(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		found := make(map[snowflake.ID]bool, len(tags))
		for _, t := range tags {
			found[t.ID] = true
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}

	lookups.collections, err = resolveIDs(collectionRaw, domain.ErrCollectionNotFound, func(ids []snowflake.ID) (map[snowflake.ID]bool, error) {
		collections, err := s.collections.FindByIDs(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		found := make(map[snowflake.ID]bool, len(collections))
		for _, c := range collections {
			found[c.ID] = true
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}

	lookups.channels, err = resolveIDs(channelRaw, domain.ErrSalesChannelNotFound, func(ids []snowflake.ID) (map[snowflake.ID]bool, error) {
		channels, err := s.channels.FindByIDs(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		found := make(map[snowflake.ID]bool, len(channels))
		for _, c := range channels {
			found[c.ID] = true
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}

	lookups.categories, err = resolveIDs(categoryRaw, domain.ErrCategoryNotFound, func(ids []snowflake.ID) (map[snowflake.ID]bool, error) {
		categories, err := s.categories.FindByIDs(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		found := make(map[snowflake.ID]bool, len(categories))
		for _, c := range categories {
			found[c.ID] = true
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	return lookups, nil
}

// resolveIDs parses the raw ids, fetches them in one query and fails with
// sentinel naming every id that did not resolve.
func resolveIDs(raw []string, sentinel error, fetch func([]snowflake.ID) (map[snowflake.ID]bool, error)) (map[string]snowflake.ID, error) {
	resolved := make(map[string]snowflake.ID, len(raw))
	if len(raw) == 0 {
		return resolved, nil
	}
	ids := make([]snowflake.ID, 0, len(raw))
	for _, r := range raw {
		trimmed := strings.TrimSpace(r)
		if _, ok := resolved[trimmed]; ok {
			continue
		}
		id, err := parseID(trimmed)
		if err != nil {
			return nil, err
		}
		resolved[trimmed] = id
		ids = append(ids, id)
	}
	found, err := fetch(ids)
	if err != nil {
		return nil, err
	}
	var missing []string
	for raw, id := range resolved {
		if !found[id] {
			missing = append(missing, raw)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", sentinel, strings.Join(missing, ", "))
	}
	return resolved, nil
}

type relationInput struct {
	TagIDs          []string
	CollectionIDs   []string
	SalesChannelIDs []string
}

type relationResult struct {
	tagIDs          []string
	collectionIDs   []string
	salesChannelIDs []string
}

// writeRelations replaces the product's tag, collection and sales channel
// links wholesale. A nil slice leaves the relation untouched, an empty
// non-nil slice clears it.
func (s *Service) writeRelations(
	ctx context.Context,
	tx *gorm.DB,
	productID snowflake.ID,
	in relationInput,
	lookups *relationLookups,
) (*relationResult, error) {
	result := &relationResult{}

	if in.TagIDs != nil {
		ids, echo := mapResolved(in.TagIDs, lookups.tags)
		if err := s.repo.ReplaceTagLinks(ctx, tx, productID, ids); err != nil {
			return nil, err
		}
		result.tagIDs = echo
	}
	if in.CollectionIDs != nil {
		ids, echo := mapResolved(in.CollectionIDs, lookups.collections)
		if err := s.repo.ReplaceCollectionLinks(ctx, tx, productID, ids); err != nil {
			return nil, err
		}
		result.collectionIDs = echo
	}
	if in.SalesChannelIDs != nil {
		ids, echo := mapResolved(in.SalesChannelIDs, lookups.channels)
		if err := s.repo.ReplaceSalesChannelLinks(ctx, tx, productID, ids); err != nil {
			return nil, err
		}
		result.salesChannelIDs = echo
	}
	return result, nil
}

func mapResolved(raw []string, resolved map[string]snowflake.ID) ([]snowflake.ID, []string) {
	ids := make([]snowflake.ID, 0, len(raw))
	echo := make([]string, 0, len(raw))
	seen := make(map[snowflake.ID]bool, len(raw))
	for _, r := range raw {
		id, ok := resolved[strings.TrimSpace(r)]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		echo = append(echo, id.String())
	}
	return ids, echo
}
