package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/community-service-hub/internal/utils"
)

// Paginate restricts a query to one page. An unset page leaves it unbounded.
func Paginate(page utils.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Number < 1 || page.Size < 1 {
			return db
		}
		return db.Offset(page.Offset()).Limit(page.Size)
	}
}

// NewestFirst orders by creation time, qualified by table when the query joins.
func NewestFirst(table string) func(db *gorm.DB) *gorm.DB {
	column := "created_at"
	if table != "" {
		column = table + ".created_at"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " DESC")
	}
}
