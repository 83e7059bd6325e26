// internal/history/sqlite.go
//
// SQLite implementation of history.Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying migrations embedded from sql/*.sql (idempotent, recorded in _migrations).
//   - Recording and listing solve entries.

package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
)

//go:embed sql/*.sql
var migrations embed.FS

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and applies
// pending migrations.
func OpenSQLite(path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// openDB ensures the parent directory exists, then opens the file with busy
// timeout and WAL journaling.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// one writer keeps SQLite happy under concurrent solves
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies embedded sql/*.sql files in lexical order, each inside its
// own transaction, skipping files already listed in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Record inserts e and sets its ID.
func (s *sqliteStore) Record(ctx context.Context, e *Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Date == "" {
		e.Date = daily.DateKey(e.CreatedAt)
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO solves
            (date, size, word, outcome, attempts, guesses, elapsed_ms, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Date, e.Size, e.Word, e.Outcome, e.Attempts,
		strings.Join(e.Guesses, ","), e.ElapsedMs, e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert solve: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert solve id: %w", err)
	}
	e.ID = id
	return nil
}

// Recent lists the newest entries first.
func (s *sqliteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, `
        SELECT id, date, size, word, outcome, attempts, guesses, elapsed_ms, created_at
        FROM solves
        ORDER BY id DESC
        LIMIT ?`, normalizeLimit(limit))
}

// ByDate lists entries of one day, newest first.
func (s *sqliteStore) ByDate(ctx context.Context, date string, limit int) ([]Entry, error) {
	return s.query(ctx, `
        SELECT id, date, size, word, outcome, attempts, guesses, elapsed_ms, created_at
        FROM solves
        WHERE date=?
        ORDER BY id DESC
        LIMIT ?`, date, normalizeLimit(limit))
}

func (s *sqliteStore) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			guesses string
			created string
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.Size, &e.Word, &e.Outcome, &e.Attempts, &guesses, &e.ElapsedMs, &created); err != nil {
			return nil, err
		}
		e.Guesses = []string{}
		if guesses != "" {
			e.Guesses = strings.Split(guesses, ",")
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *sqliteStore) Close() error { return s.db.Close() }
