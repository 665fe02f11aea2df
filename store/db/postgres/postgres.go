package postgres

import (
	"context"
	"database/sql"
	"time"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/hrygo/contentmaker/internal/profile"
	"github.com/hrygo/contentmaker/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL connection specified by the DSN in the profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// Small pool: the bot is a single-instance workload.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

	// Verify connection is working before returning.
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{db: db, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate applies the content idea schema.
func (d *DB) Migrate(ctx context.Context) error {
	stmt := `
		CREATE TABLE IF NOT EXISTS content_idea (
			id BIGSERIAL PRIMARY KEY,
			uid TEXT NOT NULL UNIQUE,
			prompt TEXT NOT NULL,
			response TEXT NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('DRAFT', 'IN_PROGRESS', 'PUBLISHED')) DEFAULT 'DRAFT',
			created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
		);

		CREATE INDEX IF NOT EXISTS idx_content_idea_status ON content_idea (status);
		CREATE INDEX IF NOT EXISTS idx_content_idea_created_ts ON content_idea (created_ts);
	`
	if _, err := d.db.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to migrate content idea schema")
	}
	return nil
}
