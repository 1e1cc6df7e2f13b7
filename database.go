package sitecms

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/site"
)

// OpenDatabase opens cfg.DSN with the dialect matching cfg.Driver. The
// postgres driver expects the host binary to register a database/sql
// driver named "postgres".
func OpenDatabase(cfg StorageConfig) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("sitecms: open sqlite: %w", err)
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("sitecms: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Driver)
	}
}

// Models lists the bun models persisted by the module.
func Models() []any {
	return []any{
		(*posts.Post)(nil),
		(*site.SettingsRecord)(nil),
		(*site.Offering)(nil),
	}
}

// EnsureSchema creates missing tables.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("sitecms: create table for %T: %w", model, err)
		}
	}
	return nil
}
