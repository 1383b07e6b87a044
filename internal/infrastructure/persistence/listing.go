package persistence

import (
	"regexp"

	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/shared"
)

// identifierPattern rejects anything that is not a plain column name,
// keeping caller-supplied ordering out of raw SQL.
var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// applyListFilter applies pagination and ordering from a shared.Filter.
// defaultOrder is used when the filter does not name a column.
func applyListFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if filter.OrderBy != "" && identifierPattern.MatchString(filter.OrderBy) {
		direction := "ASC"
		if filter.Desc {
			direction = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + direction)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	return query
}
