package pagecache

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// Sqlite keeps fetched pages on disk so repeated local runs against the
// same show don't hammer the source. Stale entries are treated as misses.
type Sqlite struct {
	db  *sql.DB
	ttl time.Duration
}

func OpenSqlite(path string, ttl time.Duration) (Sqlite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Sqlite{}, err
	}
	_, err = db.Exec(Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return Sqlite{}, err
	}
	return Sqlite{db: db, ttl: ttl}, nil
}

func (s Sqlite) Get(ctx context.Context, key string) (string, bool) {
	var body string
	var fetchedat int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT body, fetchedat FROM pages WHERE key = ?`,
		key,
	).Scan(&body, &fetchedat)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read cached page", "key", key, "err", err)
		return "", false
	}
	if s.ttl != 0 && time.Since(time.Unix(fetchedat, 0)) > s.ttl {
		return "", false
	}
	return body, true
}

func (s Sqlite) Put(ctx context.Context, key string, page string) {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO pages (key, body, fetchedat) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET body = excluded.body, fetchedat = excluded.fetchedat`,
		key, page, time.Now().Unix(),
	)
	if err != nil {
		slog.WarnContext(ctx, "failed to cache page", "key", key, "err", err)
	}
}

func (s Sqlite) Close() error {
	return s.db.Close()
}
