// Package store persists quiz history, LLM request events, preferences
// and cached mnemonics. SQLite is the default; a postgres:// DSN selects
// Postgres. Tables are created on open with ent's schema migrator.
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

	// Postgres driver, registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// backend pairs a database/sql driver with its ent dialect.
type backend struct {
	driver  string
	dialect string
	pragmas []string
}

var (
	sqliteBackend = backend{
		driver:  "sqlite",
		dialect: dialect.SQLite,
		pragmas: []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA busy_timeout = 5000",
			"PRAGMA foreign_keys = ON",
			"PRAGMA synchronous = NORMAL",
		},
	}
	postgresBackend = backend{driver: "pgx", dialect: dialect.Postgres}
)

func backendFor(dsn string) backend {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgresBackend
	}
	return sqliteBackend
}

// Store is an open database. Its repositories are cheap views over it.
type Store struct {
	db      *sql.DB
	drv     *entsql.Driver
	dialect string
	seq     *sequence
}

// Open connects to dsn, applies connection settings and creates any
// missing tables.
func Open(ctx context.Context, dsn string) (*Store, error) {
	be := backendFor(dsn)

	db, err := sql.Open(be.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	fail := func(step string, err error) (*Store, error) {
		db.Close()
		return nil, fmt.Errorf("%s: %w", step, err)
	}

	if err := db.PingContext(ctx); err != nil {
		return fail("ping database", err)
	}
	for _, p := range be.pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fail(p, err)
		}
	}

	drv := entsql.OpenDB(be.dialect, db)
	m, err := schema.NewMigrate(drv, schema.WithForeignKeys(false))
	if err != nil {
		return fail("auto-migrate", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fail("auto-migrate", err)
	}

	s := &Store{db: db, drv: drv, dialect: be.dialect}
	if s.seq, err = newSequence(ctx, s); err != nil {
		return fail("init", err)
	}
	return s, nil
}

// DB is the underlying handle, for raw queries.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect is dialect.SQLite or dialect.Postgres.
func (s *Store) Dialect() string { return s.dialect }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) QuizRepo() QuizRepo { return &quizRepo{s: s} }

func (s *Store) EventRepo() EventRepo { return &eventRepo{s: s} }

func (s *Store) EventLog() EventLog { return &eventRepo{s: s} }

func (s *Store) PreferenceRepo() PreferenceRepo { return &preferenceRepo{s: s} }

func (s *Store) MnemonicRepo() MnemonicRepo { return &mnemonicRepo{s: s} }

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

// DefaultDBPath is KANAZ_DB when set, otherwise kanaz/kanaz.db under
// $XDG_DATA_HOME (default ~/.local/share). The directory of a SQLite
// path is created.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("KANAZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(base, "kanaz", "kanaz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a SQLite path. Postgres DSNs
// are left alone.
func EnsureDir(dsn string) error {
	if backendFor(dsn).dialect == dialect.Postgres {
		return nil
	}
	return os.MkdirAll(filepath.Dir(dsn), 0o755)
}
