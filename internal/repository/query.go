package repository

import (
	"context"
	"strings"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// DefaultPageSize is used when a caller does not ask for a page size
const DefaultPageSize = 20

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string    // The field to sort by (API field name)
	Order SortOrder // asc or desc
}

// DefaultSortConfig returns a default sort configuration (updated_at DESC)
func DefaultSortConfig() SortConfig {
	return SortConfig{
		Field: "updatedAt",
		Order: SortOrderDesc,
	}
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// BuildOrderClause builds the SQL ORDER BY clause from field mapping and sort config.
// fieldMap maps API field names to database column names; unknown fields fall back to defaultColumn.
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultColumn string) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if config.Order == SortOrderAsc {
		order = "ASC"
	}

	return column + " " + order
}

// NormalizePage clamps page and pageSize to sane values
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate applies offset and limit for a 1-based page
func Paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	page, pageSize = NormalizePage(page, pageSize)
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

// effectiveOwner returns the user id queries must be scoped to. API key
// callers and anonymous contexts are not scoped.
func effectiveOwner(ctx context.Context) *uuid.UUID {
	userCtx, ok := auth.FromContext(ctx)
	if !ok || userCtx.IsSystem {
		return nil
	}
	id := userCtx.UserID
	return &id
}

// ApplyOwnerFilter restricts a forms query to the caller's own forms
func ApplyOwnerFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	return ApplyOwnerFilterWithColumn(ctx, query, "creator_id")
}

// ApplyOwnerFilterWithColumn applies the owner filter using a specific column name
func ApplyOwnerFilterWithColumn(ctx context.Context, query *gorm.DB, columnName string) *gorm.DB {
	if owner := effectiveOwner(ctx); owner != nil {
		return query.Where(columnName+" = ?", *owner)
	}
	return query
}

// MustOwn reports whether the caller may access a record owned by ownerID
func MustOwn(ctx context.Context, ownerID uuid.UUID) bool {
	owner := effectiveOwner(ctx)
	if owner == nil {
		_, ok := auth.FromContext(ctx)
		return ok
	}
	return *owner == ownerID
}
