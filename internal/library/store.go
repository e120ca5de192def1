// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists accepted discovery results in a SQLite catalog so
// past runs can be queried without re-hitting the search APIs.
// Implements: docs/ARCHITECTURE § Library Catalog.
package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// Store manages the paper catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog at cfg.DBPath, creating the schema when
// it does not exist.
func Open(cfg types.LibraryConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			backend TEXT NOT NULL,
			created TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			paper_id TEXT,
			title TEXT NOT NULL,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			url TEXT,
			doi TEXT,
			pdf_url TEXT,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_run_id ON papers(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts one run and its accepted papers, returning the run ID.
func (s *Store) RecordRun(topic, backend string, papers []types.Paper) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (topic, backend, created) VALUES (?, ?, ?)`,
		topic, backend, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO papers
		(run_id, paper_id, title, authors, year, venue, url, doi, pdf_url, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range papers {
		if _, err := stmt.Exec(
			runID, p.ID, p.Title, strings.Join(p.Authors, "; "),
			p.Year, p.Venue, p.URL, p.DOI, p.PDFURL, p.Source,
		); err != nil {
			return 0, fmt.Errorf("inserting paper %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// SearchOptions narrows a catalog query. Zero values mean "any".
type SearchOptions struct {
	TitleLike string
	VenueLike string
	Year      int
	Limit     int
}

// Search returns cataloged papers matching the options, newest run first.
func (s *Store) Search(opts SearchOptions) ([]types.Paper, error) {
	var conds []string
	var args []any

	if opts.TitleLike != "" {
		conds = append(conds, "title LIKE ?")
		args = append(args, "%"+opts.TitleLike+"%")
	}
	if opts.VenueLike != "" {
		conds = append(conds, "venue LIKE ?")
		args = append(args, "%"+opts.VenueLike+"%")
	}
	if opts.Year != 0 {
		conds = append(conds, "year = ?")
		args = append(args, opts.Year)
	}

	query := `SELECT paper_id, title, authors, year, venue, url, doi, pdf_url, source FROM papers`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY run_id DESC, rowid ASC LIMIT ?"

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		var p types.Paper
		var authors string
		if err := rows.Scan(&p.ID, &p.Title, &authors, &p.Year, &p.Venue,
			&p.URL, &p.DOI, &p.PDFURL, &p.Source); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		p.Authors = []string{}
		if authors != "" {
			for _, a := range strings.Split(authors, "; ") {
				p.Authors = append(p.Authors, a)
			}
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating paper rows: %w", err)
	}
	return papers, nil
}
