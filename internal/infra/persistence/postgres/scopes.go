package postgres

import (
	"strings"

	"storefront/internal/domain/repository"

	"gorm.io/gorm"
)

// paginate applies a Page to a query.
func paginate(page repository.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Offset > 0 {
			db = db.Offset(page.Offset)
		}
		if page.Limit > 0 {
			db = db.Limit(page.Limit)
		}

		return db
	}
}

// likePattern wraps term for a case-insensitive substring match, escaping LIKE wildcards.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(term))

	return "%" + escaped + "%"
}
