package implementation

import (
	"notetaking-be/internal/repository/scope"
	"notetaking-be/internal/repository/specification"

	"gorm.io/gorm"
)

// applySpecifications adds the soft-delete filter for table unless the
// caller asked for deleted rows, then applies specs in order.
func applySpecifications(db *gorm.DB, table string, specs ...specification.Specification) *gorm.DB {
	if !specification.IncludesDeleted(specs) {
		db = db.Scopes(scope.NotDeleted(table))
	}
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func sameIds(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uint]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}
