// Package store is the SQLite event log behind session history and LLM
// request auditing. Tables are declared with ent's schema package and
// created on Open; queries go through ent's SQL builder.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const (
	// DBFileName is the database file inside the data directory.
	DBFileName = "parserinator.db"
	// EnvHome overrides the data directory.
	EnvHome = "PARSERINATOR_HOME"
)

// pragmas tune SQLite for one local writer. They ride on the DSN so every
// pooled connection gets them; ent's migrator requires foreign_keys.
var pragmas = []string{
	"_pragma=busy_timeout(5000)",
	"_pragma=foreign_keys(1)",
	"_pragma=journal_mode(WAL)",
	"_pragma=synchronous(NORMAL)",
}

// withPragmas turns a file path or file: URI into a DSN carrying pragmas.
func withPragmas(dsn string) string {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

// Store owns the database connection.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open connects to the SQLite database at dsn (a path or file: URI) and
// creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	drv := entsql.OpenDB(dialect.SQLite, db)
	fail := func(step string, err error) (*Store, error) {
		drv.Close()
		return nil, fmt.Errorf("%s: %w", step, err)
	}

	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fail("migrate", err)
	}
	if err := m.Create(context.Background(), tables...); err != nil {
		return fail("migrate", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		return fail("sequence", err)
	}
	return &Store{db: db, drv: drv, seq: seq}, nil
}

// DB exposes the connection for ad hoc queries.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

// EventRepo returns the repository over this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq, now: nowUTC}
}

// DefaultDataDir returns $PARSERINATOR_HOME, else $XDG_DATA_HOME/parserinator,
// else ~/.local/share/parserinator, creating it when missing.
func DefaultDataDir() (string, error) {
	dir := os.Getenv(EnvHome)
	if dir == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		dir = filepath.Join(base, "parserinator")
	}
	return dir, os.MkdirAll(dir, 0o755)
}

// DBPath returns the database file in dataDir, creating the directory.
func DBPath(dataDir string) (string, error) {
	return filepath.Join(dataDir, DBFileName), os.MkdirAll(dataDir, 0o755)
}
