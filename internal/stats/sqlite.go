package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// NewSQLiteStore opens (or creates) a local stats database.
func NewSQLiteStore(dbPath string) (Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, statsSchema()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("stats: ensure schema: %w", err)
	}

	s := &sqlStore{
		db:   db,
		bind: func(n int) string { return "?" + strconv.Itoa(n) },
	}
	s.insert = func(ctx context.Context, profile string) error {
		_, err := db.ExecContext(ctx, `
INSERT INTO mulligan_stats (profile, updated_at_ms)
VALUES (?1, ?2)
ON CONFLICT (profile) DO NOTHING`, profile, time.Now().UTC().UnixMilli())
		return err
	}
	return s, nil
}
