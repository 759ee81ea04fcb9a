package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the GORM handle shared by the catalog, warehouse and
// order repositories. Embed it and query through DB(ctx).
type Base struct {
	db *gorm.DB
}

// NewBase wraps a GORM connection for embedding in a repository.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB binds the connection to ctx so cancellation reaches the driver.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
