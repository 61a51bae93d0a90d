package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var successColumns = [Counters]string{"success_1", "success_2", "success_3", "success_4", "success_5"}

// sqlStore implements Store over database/sql. bind renders the n-th (1-based)
// placeholder for the driver.
type sqlStore struct {
	db     *sql.DB
	bind   func(n int) string
	insert func(ctx context.Context, profile string) error
}

func (s *sqlStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqlStore) Get(ctx context.Context, profile string) (Tally, error) {
	profile = normalizeProfile(profile)
	var t Tally
	query := fmt.Sprintf(`
SELECT %s, total
FROM mulligan_stats
WHERE profile = %s`, strings.Join(successColumns[:], ", "), s.bind(1))
	err := s.db.QueryRowContext(ctx, query, profile).Scan(
		&t.Success[0], &t.Success[1], &t.Success[2], &t.Success[3], &t.Success[4], &t.Total,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Tally{}, nil
	}
	if err != nil {
		return Tally{}, fmt.Errorf("stats: get %q: %w", profile, err)
	}
	return t, nil
}

// exec makes sure the profile row exists and then runs one UPDATE. set is
// the SET clause; its placeholders are numbered from 2, profile is 1.
func (s *sqlStore) exec(ctx context.Context, profile, set string, args ...any) (Tally, error) {
	profile = normalizeProfile(profile)
	if err := s.insert(ctx, profile); err != nil {
		return Tally{}, fmt.Errorf("stats: create %q: %w", profile, err)
	}
	query := fmt.Sprintf(`
UPDATE mulligan_stats
SET %s, updated_at_ms = %s
WHERE profile = %s`, set, s.bind(len(args)+2), s.bind(1))
	params := append([]any{profile}, args...)
	params = append(params, time.Now().UTC().UnixMilli())
	if _, err := s.db.ExecContext(ctx, query, params...); err != nil {
		return Tally{}, fmt.Errorf("stats: update %q: %w", profile, err)
	}
	return s.Get(ctx, profile)
}

func (s *sqlStore) IncrementTotal(ctx context.Context, profile string) (Tally, error) {
	return s.exec(ctx, profile, "total = total + 1")
}

func (s *sqlStore) SetSuccess(ctx context.Context, profile string, i, n int) (Tally, error) {
	if err := checkCounter(i); err != nil {
		return Tally{}, err
	}
	return s.exec(ctx, profile, successColumns[i]+" = "+s.bind(2), max(n, 0))
}

func (s *sqlStore) SetTotal(ctx context.Context, profile string, n int) (Tally, error) {
	return s.exec(ctx, profile, "total = "+s.bind(2), max(n, 0))
}

func (s *sqlStore) Reset(ctx context.Context, profile string) (Tally, error) {
	set := make([]string, 0, Counters+1)
	for _, c := range successColumns {
		set = append(set, c+" = 0")
	}
	set = append(set, "total = 0")
	return s.exec(ctx, profile, strings.Join(set, ", "))
}

func statsSchema() string {
	var cols strings.Builder
	for _, c := range successColumns {
		fmt.Fprintf(&cols, "    %s INTEGER NOT NULL DEFAULT 0,\n", c)
	}
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS mulligan_stats (
    profile TEXT PRIMARY KEY,
%s    total INTEGER NOT NULL DEFAULT 0,
    updated_at_ms BIGINT NOT NULL
)`, cols.String())
}
