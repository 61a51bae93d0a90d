package stats

import (
	"fmt"
	"strings"
)

const (
	ModeMemory   = "memory"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

// Open builds a store from a target string: "memory", "sqlite:<path>" or
// "postgres:<dsn>". An empty target is memory.
func Open(target string) (Store, string, error) {
	target = strings.TrimSpace(target)
	mode, arg, _ := strings.Cut(target, ":")
	switch strings.ToLower(mode) {
	case "", ModeMemory, "mem":
		return NewMemoryStore(), ModeMemory, nil
	case ModeSQLite:
		s, err := NewSQLiteStore(arg)
		return s, ModeSQLite, err
	case ModePostgres, "postgresql":
		// postgres:// URLs are passed through whole.
		dsn := arg
		if strings.HasPrefix(arg, "//") {
			dsn = target
		}
		s, err := NewPostgresStore(dsn)
		return s, ModePostgres, err
	default:
		return nil, mode, fmt.Errorf("invalid stats store %q (supported: %s, %s:<path>, %s:<dsn>)", target, ModeMemory, ModeSQLite, ModePostgres)
	}
}
