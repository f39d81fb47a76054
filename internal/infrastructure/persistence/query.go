package persistence

import (
	"strings"

	"github.com/comercia/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies page/page-size bounds to the query
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyOrdering applies the requested ordering, restricted to the given
// column whitelist. Unknown columns fall back to the default ordering so a
// request cannot inject arbitrary SQL through order_by.
func applyOrdering(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" && allowed[filter.OrderBy] {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + dir)
	}
	return query.Order(defaultOrder)
}
