// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// QueryOptions holds parameters for outline index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over heading text.
	Query string

	// Level filters by heading level (H1, H2, H3).
	Level types.HeadingLevel

	// DocID filters by document.
	DocID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Level == "" && q.DocID == ""
}

// QueryResult is a heading hit with its document context.
type QueryResult struct {
	DocID    string             `json:"doc_id" yaml:"doc_id"`
	DocTitle string             `json:"doc_title" yaml:"doc_title"`
	Level    types.HeadingLevel `json:"level" yaml:"level"`
	Text     string             `json:"text" yaml:"text"`
	Page     int                `json:"page" yaml:"page"`
	Pos      int                `json:"pos" yaml:"pos"`
}

// Query searches the outline index with optional full-text search and
// structured filters. Results are ranked by relevance for full-text
// queries, or ordered by document and outline position otherwise.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT h.doc_id, d.title, h.level, h.text, h.page, h.pos
			FROM headings_fts
			JOIN headings h ON h.rowid = headings_fts.rowid
			LEFT JOIN documents d ON h.doc_id = d.id
			WHERE headings_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT h.doc_id, d.title, h.level, h.text, h.page, h.pos
			FROM headings h
			LEFT JOIN documents d ON h.doc_id = d.id
			WHERE 1=1`)
	}

	if opts.Level != "" {
		qb.WriteString(` AND h.level = ?`)
		args = append(args, string(opts.Level))
	}

	if opts.DocID != "" {
		qb.WriteString(` AND h.doc_id = ?`)
		args = append(args, opts.DocID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY headings_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY h.doc_id, h.pos`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying outline index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr    QueryResult
			level string
			title sql.NullString
		)
		if err := rows.Scan(&qr.DocID, &title, &level, &qr.Text, &qr.Page, &qr.Pos); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.Level = types.HeadingLevel(level)
		if title.Valid {
			qr.DocTitle = title.String
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}

// Documents lists the indexed documents with their titles and heading
// counts, ordered by ID.
func (s *Store) Documents(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, heading_count FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var (
			d     DocumentInfo
			title sql.NullString
		)
		if err := rows.Scan(&d.ID, &title, &d.HeadingCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if title.Valid {
			d.Title = title.String
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// DocumentInfo is one row of the document listing.
type DocumentInfo struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	HeadingCount int    `json:"heading_count" yaml:"heading_count"`
}
