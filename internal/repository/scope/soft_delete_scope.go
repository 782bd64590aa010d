package scope

import (
	"fmt"

	"gorm.io/gorm"
)

// NotDeleted is the default read filter for soft-deletable tables.
func NotDeleted(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s.is_deleted = ?", table), false)
	}
}
