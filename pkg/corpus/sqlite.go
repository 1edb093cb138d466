package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// SQLiteSource reads baskets from the baskets table of a SQLite database.
type SQLiteSource struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS baskets (
	basket_id  TEXT NOT NULL,
	position   INTEGER NOT NULL,
	ingredient TEXT NOT NULL,
	PRIMARY KEY (basket_id, position)
)`

// OpenSQLite opens an existing database at path read-only. A missing
// file is an error; nothing is created.
func OpenSQLite(path string) (*SQLiteSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	return openSQLite("file:" + path + "?mode=ro&_pragma=busy_timeout(5000)")
}

// CreateSQLite opens the database at path read-write, creating the file
// and the baskets table when missing. Used to build corpora and fixtures.
func CreateSQLite(ctx context.Context, path string) (*SQLiteSource, error) {
	s, err := openSQLite(path + "?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err := s.CreateSchema(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func openSQLite(dsn string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	return &SQLiteSource{db: db}, nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// CreateSchema creates the baskets table if it does not exist.
func (s *SQLiteSource) CreateSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create baskets table: %w", err)
	}
	return nil
}

// Insert stores one basket, ingredients numbered in order.
func (s *SQLiteSource) Insert(ctx context.Context, basketID string, ingredients []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const q = `INSERT INTO baskets (basket_id, position, ingredient) VALUES (?, ?, ?)`
	for i, ing := range ingredients {
		if _, err := tx.ExecContext(ctx, q, basketID, i, ing); err != nil {
			return fmt.Errorf("insert %s/%d: %w", basketID, i, err)
		}
	}
	return tx.Commit()
}

// Baskets returns every basket, in order of first basket id appearance
// by rowid, ingredients by position.
func (s *SQLiteSource) Baskets(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT basket_id, ingredient FROM baskets
		ORDER BY (SELECT MIN(rowid) FROM baskets b2 WHERE b2.basket_id = baskets.basket_id), position`)
	if err != nil {
		return nil, fmt.Errorf("list baskets: %w", err)
	}
	defer rows.Close()

	g := newGrouper()
	for rows.Next() {
		var id, ing string
		if err := rows.Scan(&id, &ing); err != nil {
			return nil, fmt.Errorf("scan basket row: %w", err)
		}
		g.add(id, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return g.baskets(), nil
}
