package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	saleschanneldomain "github.com/smallbiznis/storefront/internal/saleschannel/domain"
	"gorm.io/gorm"
)

// EnsureDefaultSalesChannel seeds the fallback sales channel so a newly
// created product always has a channel to publish on.
func EnsureDefaultSalesChannel(db *gorm.DB, name string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("default sales channel name is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var channel saleschanneldomain.SalesChannel
		err := tx.WithContext(ctx).
			Where("name = ?", name).
			First(&channel).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		description := "Created by the storefront bootstrap."
		return tx.WithContext(ctx).Create(&saleschanneldomain.SalesChannel{
			ID:          node.Generate(),
			Name:        name,
			Description: &description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}).Error
	})
}
