package handle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ErrExhausted is returned when no unique handle could be derived within the
// configured number of attempts.
var ErrExhausted = errors.New("handle_exhausted")

// Slugify derives a URL-safe handle candidate from a title.
func Slugify(value string) string {
	return slug.Make(strings.TrimSpace(value))
}

// Generate returns a handle unique among live rows of table, retrying with
// -1, -2, ... suffixes. It must run inside the caller's transaction; a
// uniqueness violation on the subsequent insert is retryable, not fatal.
func Generate(ctx context.Context, tx *gorm.DB, table, candidate string, maxAttempts int) (string, error) {
	base := Slugify(candidate)
	if base == "" {
		return "", fmt.Errorf("%w: empty candidate", ErrExhausted)
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for i := 0; i < maxAttempts; i++ {
		h := base
		if i > 0 {
			h = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := exists(ctx, tx, table, h)
		if err != nil {
			return "", err
		}
		if !taken {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrExhausted, base)
}

func exists(ctx context.Context, tx *gorm.DB, table, h string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Table(table).
		Where("handle = ? AND deleted_at IS NULL", h).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Batch assigns handles for a batch of titles against one bulk-fetched
// snapshot of the table, so sibling rows in the same request never collide.
type Batch struct {
	tx          *gorm.DB
	table       string
	maxAttempts int
	used        map[string]bool
}

// NewBatch primes a batch generator with every live handle that could collide
// with the given candidates.
func NewBatch(ctx context.Context, tx *gorm.DB, table string, candidates []string, maxAttempts int) (*Batch, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	b := &Batch{
		tx:          tx,
		table:       table,
		maxAttempts: maxAttempts,
		used:        make(map[string]bool),
	}

	bases := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if base := Slugify(c); base != "" {
			bases[base] = true
		}
	}
	if len(bases) == 0 {
		return b, nil
	}

	stmt := tx.WithContext(ctx).Table(table).Where("deleted_at IS NULL")
	grouped := tx.Session(&gorm.Session{NewDB: true})
	for base := range bases {
		grouped = grouped.Or("handle = ? OR handle LIKE ?", base, base+"-%")
	}
	var taken []string
	if err := stmt.Where(grouped).Pluck("handle", &taken).Error; err != nil {
		return nil, err
	}
	for _, h := range taken {
		b.used[h] = true
	}
	return b, nil
}

// Generate returns the next free handle for candidate and reserves it within
// the batch. When sequential suffixes are exhausted it falls back to a
// timestamp-seeded suffix to reduce contention across concurrent batches.
func (b *Batch) Generate(candidate string) (string, error) {
	base := Slugify(candidate)
	if base == "" {
		return "", fmt.Errorf("%w: empty candidate", ErrExhausted)
	}

	if !b.used[base] {
		b.used[base] = true
		return base, nil
	}
	for i := 1; i < b.maxAttempts; i++ {
		h := fmt.Sprintf("%s-%d", base, i)
		if !b.used[h] {
			b.used[h] = true
			return h, nil
		}
	}

	h := fmt.Sprintf("%s-%d", base, time.Now().UnixMilli())
	for b.used[h] {
		h += "-1"
	}
	b.used[h] = true
	return h, nil
}
