package specification

import "gorm.io/gorm"

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// IncludeDeleted lifts the default soft-delete filter. Repositories look
// for it before applying their scopes; its Apply is a no-op.
type IncludeDeleted struct{}

func (s IncludeDeleted) Apply(db *gorm.DB) *gorm.DB {
	return db
}

// IncludesDeleted reports whether specs contains IncludeDeleted.
func IncludesDeleted(specs []Specification) bool {
	for _, spec := range specs {
		if _, ok := spec.(IncludeDeleted); ok {
			return true
		}
	}
	return false
}
