// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists extracted outlines in a SQLite database and
// builds a full-text retrieval index over heading text.
// See docs/ARCHITECTURE § Outline Index.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/outline-engine/pkg/types"
)

const dbFile = "outline.db"

// Store manages the outline index SQLite database.
type Store struct {
	db          *sql.DB
	indexDir    string
	outlinesDir string
	maxResults  int
}

// NewStore opens or creates the outline index at IndexDir/outline.db,
// creating the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:          db,
		indexDir:    cfg.IndexDir,
		outlinesDir: cfg.OutlinesDir,
		maxResults:  maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT,
			source_json TEXT,
			heading_count INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS headings (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL REFERENCES documents(id),
			level TEXT NOT NULL,
			text TEXT NOT NULL,
			page INTEGER NOT NULL,
			pos INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_headings_doc_id ON headings(doc_id)`,
		`CREATE INDEX IF NOT EXISTS idx_headings_level ON headings(level)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			doc_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='headings_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE headings_fts USING fts5(text, content=headings, content_rowid=rowid)`,
			`CREATE TRIGGER headings_ai AFTER INSERT ON headings BEGIN
				INSERT INTO headings_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
			`CREATE TRIGGER headings_ad AFTER DELETE ON headings BEGIN
				INSERT INTO headings_fts(headings_fts, rowid, text) VALUES('delete', old.rowid, old.text);
			END`,
			`CREATE TRIGGER headings_au AFTER UPDATE ON headings BEGIN
				INSERT INTO headings_fts(headings_fts, rowid, text) VALUES('delete', old.rowid, old.text);
				INSERT INTO headings_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an outline indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of outline files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads outline JSON files from OutlinesDir and populates the
// database. New files are indexed, changed files re-indexed, and
// unchanged files skipped, keyed on file modification time. On success
// it refreshes export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.outlinesDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading outlines directory %s: %w", s.outlinesDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		docID := strings.TrimSuffix(entry.Name(), ".json")
		filePath := filepath.Join(s.outlinesDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE doc_id = ?`, docID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		var doc types.DocumentOutline
		if err := json.Unmarshal(data, &doc); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestOutline(ctx, docID, filePath, &doc, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d headings)\n", docID, len(doc.Outline))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d headings)\n", docID, len(doc.Outline))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestOutline(ctx context.Context, docID, sourcePath string, doc *types.DocumentOutline, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM headings WHERE doc_id = ?`, docID); err != nil {
			return fmt.Errorf("deleting old headings: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, source_json, heading_count)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, source_json=excluded.source_json,
			heading_count=excluded.heading_count`,
		docID, doc.Title, sourcePath, len(doc.Outline),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO headings (doc_id, level, text, page, pos) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for pos, entry := range doc.Outline {
		if !entry.Level.Valid() {
			return fmt.Errorf("heading %d has invalid level %q", pos, entry.Level)
		}
		if _, err := stmt.ExecContext(ctx,
			docID, string(entry.Level), entry.Text, entry.Page, pos,
		); err != nil {
			return fmt.Errorf("inserting heading %d: %w", pos, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (doc_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		docID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
