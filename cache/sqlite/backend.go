// Package sqlite stores manifests in a SQLite database, one row per
// platform. It lets several projects share a single cache file.
package sqlite

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-assetgen/cache"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

type Backend struct {
	pool *sqlitemigration.Pool
}

// Read implements cache.Backend.
func (b *Backend) Read(ctx context.Context, platform string) ([]byte, error) {
	conn, err := b.pool.Take(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer b.pool.Put(conn)

	var (
		data  string
		found bool
	)

	err = sqlitex.Execute(conn, `SELECT data FROM manifests WHERE platform = ?`, &sqlitex.ExecOptions{
		Args: []any{platform},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			data = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !found {
		return nil, errors.WithStack(cache.ErrNotFound)
	}

	return []byte(data), nil
}

// Write implements cache.Backend.
func (b *Backend) Write(ctx context.Context, platform string, data []byte) error {
	conn, err := b.pool.Take(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	defer b.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO manifests (platform, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(platform) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, &sqlitex.ExecOptions{
		Args: []any{platform, string(data), time.Now().Unix()},
	})

	return errors.WithStack(err)
}

func (b *Backend) Close() error {
	return errors.WithStack(b.pool.Close())
}

func NewBackend(dbPath string) *Backend {
	schema := sqlitemigration.Schema{
		Migrations: []string{
			`CREATE TABLE IF NOT EXISTS manifests (
					platform TEXT PRIMARY KEY,  -- Canonical platform name
					data TEXT NOT NULL,         -- Serialized manifest
					updated_at INTEGER NOT NULL -- Last write (Unix timestamp)
				);
			`,
		},
	}

	pool := sqlitemigration.NewPool(dbPath, schema, sqlitemigration.Options{
		Flags: sqlite.OpenCreate | sqlite.OpenReadWrite | sqlite.OpenWAL,
		PrepareConn: func(conn *sqlite.Conn) error {
			return sqlitex.ExecScript(conn, `PRAGMA busy_timeout = 5000;`)
		},
		OnError: func(e error) {
			slog.Error("sqlite cache error", slog.Any("error", e))
		},
	})

	return &Backend{
		pool: pool,
	}
}

var _ cache.Backend = &Backend{}
