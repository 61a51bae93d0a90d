package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// NewPostgresStore connects to a shared stats database and creates the
// table if needed.
func NewPostgresStore(dsn string) (Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("empty postgres dsn")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
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
		bind: func(n int) string { return "$" + strconv.Itoa(n) },
	}
	s.insert = func(ctx context.Context, profile string) error {
		_, err := db.ExecContext(ctx, `
INSERT INTO mulligan_stats (profile, updated_at_ms)
VALUES ($1, $2)`, profile, time.Now().UTC().UnixMilli())
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return s, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
