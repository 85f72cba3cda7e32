// Package store persists compiled grammars (their rules, not their parse
// tables) to a local sqlite database so a daemon restart doesn't force every
// client to recompile its grammar.
// Ported from server/dao/sqlite/sqlite.go's database/sql + modernc.org/sqlite
// + rezi pattern.
package store

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	_ "modernc.org/sqlite"

	"github.com/kestrelparse/cmaj/internal/grammar"
)

// ErrNotFound is returned when a lookup finds no matching grammar.
var ErrNotFound = errors.New("no grammar with that name is stored")

// Record is a stored grammar: its original definition source (for display
// and re-editing) plus the compiled, augmented Grammar ready for GraphFor.
type Record struct {
	Name       string
	Definition string
	Compiled   grammar.Grammar
	UpdatedAt  time.Time
}

// Store is a grammars table backed by sqlite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at
// filepath.Join(dir, "grammars.db") and ensures its schema exists.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, "grammars.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS grammars (
	name TEXT PRIMARY KEY,
	definition TEXT NOT NULL,
	compiled TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores (or replaces) the grammar named name.
func (s *Store) Put(name, definition string, g grammar.Grammar) error {
	encoded, err := encodeGrammar(g)
	if err != nil {
		return fmt.Errorf("encoding grammar %q: %w", name, err)
	}

	const q = `
INSERT INTO grammars (name, definition, compiled, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET definition = excluded.definition, compiled = excluded.compiled, updated_at = excluded.updated_at;`
	_, err = s.db.Exec(q, name, definition, encoded, time.Now().Unix())
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// Get retrieves the grammar named name. Returns ErrNotFound if absent.
func (s *Store) Get(name string) (Record, error) {
	const q = `SELECT definition, compiled, updated_at FROM grammars WHERE name = ?;`

	var (
		definition string
		encoded    string
		updatedAt  int64
	)
	err := s.db.QueryRow(q, name).Scan(&definition, &encoded, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, wrapDBError(err)
	}

	g, err := decodeGrammar(encoded)
	if err != nil {
		return Record{}, fmt.Errorf("decoding stored grammar %q: %w", name, err)
	}

	return Record{
		Name:       name,
		Definition: definition,
		Compiled:   g,
		UpdatedAt:  time.Unix(updatedAt, 0),
	}, nil
}

// Names lists every stored grammar's name, in no particular order.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM grammars;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the grammar named name, if present.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM grammars WHERE name = ?;`, name)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func encodeGrammar(g grammar.Grammar) (string, error) {
	enc, err := rezi.Enc(g.Rules())
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(enc), nil
}

func decodeGrammar(encoded string) (grammar.Grammar, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("base64 decode: %w", err)
	}

	var rules []grammar.Rule
	if _, err := rezi.Dec(raw, &rules); err != nil {
		return grammar.Grammar{}, fmt.Errorf("rezi decode: %w", err)
	}

	return grammar.New(rules...), nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("store: %w", err)
}
