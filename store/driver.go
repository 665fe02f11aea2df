package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	Migrate(ctx context.Context) error

	CreateContentIdea(ctx context.Context, create *ContentIdea) (*ContentIdea, error)
	ListContentIdeas(ctx context.Context, find *FindContentIdea) ([]*ContentIdea, error)
	UpdateContentIdea(ctx context.Context, update *UpdateContentIdea) (*ContentIdea, error)
	DeleteContentIdea(ctx context.Context, delete *DeleteContentIdea) (int64, error)
}
