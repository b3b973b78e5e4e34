package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

/*
A SQLStore is a Gateway that keeps templates in a sqlite database, one row per template.

Row order comes from the position column, which Save rewrites in full every time, so the
database holds exactly the list that was last saved. As with the JSON document, ids are
not stored.
*/

var schema string = `
	CREATE TABLE IF NOT EXISTS template (
		position INTEGER PRIMARY KEY,
		contents TEXT NOT NULL
	);
	`

type SQLStore struct {
	dir string
	db  *sql.DB
}

// NewSQLStore returns a Gateway that uses <dir>/templates.db. An empty dir means persistence
// is unavailable.
func NewSQLStore(dir string) *SQLStore {
	return &SQLStore{dir: dir}
}

func (s *SQLStore) Location() string { return s.dir }

// Path returns the database path, or "" if persistence is unavailable
func (s *SQLStore) Path() string {
	if s.dir == "" {
		return ""
	}
	return filepath.Join(s.dir, SQLFileName)
}

// open connects to the database, creating the directory, file, and schema as needed
func (s *SQLStore) open() error {
	if s.db != nil {
		return nil
	}
	if s.dir == "" {
		return ErrUnavailable
	}
	if err := os.MkdirAll(s.dir, dirPerms); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	c, err := sql.Open("sqlite", s.Path())
	if err != nil {
		return err
	}
	if _, err = c.Exec(schema); err != nil {
		c.Close()
		return err
	}
	s.db = c
	return nil
}

func (s *SQLStore) Load() []string {
	path := s.Path()
	if path == "" {
		return []string{}
	}
	// Loading must not leave an empty database behind
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return []string{}
	}
	if err := s.open(); err != nil {
		return []string{}
	}

	rows, err := s.db.Query("SELECT contents FROM template ORDER BY position")
	if err != nil {
		return []string{}
	}
	defer rows.Close()
	result := make([]string, 0)
	for rows.Next() {
		var contents string
		if err := rows.Scan(&contents); err != nil {
			return []string{}
		}
		result = append(result, contents)
	}
	if rows.Err() != nil {
		return []string{}
	}
	return result
}

func (s *SQLStore) Save(items []string) error {
	if err := s.open(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM template"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear templates: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO template(position, contents) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, text := range items {
		if _, err = stmt.Exec(i, text); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save template %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
