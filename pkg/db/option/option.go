package option

import (
	"strings"

	"gorm.io/gorm"
)

// Option mutates a query statement.
type Option interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

// Pagination carries offset-style list parameters.
type Pagination struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

const maxLimit = 250

// ApplyPagination clamps and applies offset/limit.
func ApplyPagination(p Pagination) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		page := p.Page
		if page < 1 {
			page = 1
		}
		limit := p.Limit
		if limit < 1 {
			limit = 20
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		return stmt.Offset((page - 1) * limit).Limit(limit)
	})
}

// SortBy is a normalized, allow-listed sort directive.
type SortBy struct {
	Column    string
	Direction string
}

// WithQuerySortBy normalizes raw sort parameters against an allow-list.
// Unknown columns silently fall back to created_at.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) SortBy {
	column := strings.ToLower(strings.TrimSpace(sortBy))
	if column == "" || !allowed[column] {
		column = "created_at"
	}

	direction := strings.ToLower(strings.TrimSpace(orderBy))
	if direction != "asc" && direction != "desc" {
		direction = "desc"
	}

	return SortBy{Column: column, Direction: direction}
}

// WithSortBy applies a normalized sort directive.
func WithSortBy(s SortBy) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if s.Column == "" {
			return stmt
		}
		return stmt.Order(s.Column + " " + s.Direction)
	})
}
