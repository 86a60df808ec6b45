// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	outlinesDir := filepath.Join(tmpDir, "output")
	if err := os.MkdirAll(outlinesDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := types.IndexConfig{
		IndexDir:    filepath.Join(tmpDir, "index"),
		OutlinesDir: outlinesDir,
		MaxResults:  20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func writeOutlineFile(t *testing.T, tmpDir, docID string, doc types.DocumentOutline) {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, "output", docID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func sampleOutline(title string) types.DocumentOutline {
	return types.DocumentOutline{
		Title: title,
		Outline: []types.OutlineEntry{
			{Level: types.LevelH1, Text: "Introduction", Page: 1},
			{Level: types.LevelH2, Text: "Scope and Definitions", Page: 2},
			{Level: types.LevelH1, Text: "Evaluation Criteria", Page: 4},
			{Level: types.LevelH3, Text: "Scoring Rubric", Page: 5},
		},
	}
}

func ingestHelper(t *testing.T, store *Store, tmpDir, docID string) {
	t.Helper()
	writeOutlineFile(t, tmpDir, docID, sampleOutline("Proposal "+docID))
	var buf strings.Builder
	if _, err := store.Ingest(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	tables := []string{"documents", "headings", "headings_fts", "indexing_status"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := types.IndexConfig{
		IndexDir:    filepath.Join(tmpDir, "index"),
		OutlinesDir: filepath.Join(tmpDir, "output"),
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "index", dbFile)); os.IsNotExist(err) {
		t.Error("database file not created")
	}
}

// --- ingest tests ---

func TestIngest(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeOutlineFile(t, tmpDir, "rfp-2026", sampleOutline("Request for Proposal"))

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Indexed != 1 {
		t.Errorf("indexed = %d, want 1", summary.Indexed)
	}
	if summary.Total() != 1 {
		t.Errorf("total = %d, want 1", summary.Total())
	}

	var headingCount int
	if err := store.db.QueryRow(`SELECT count(*) FROM headings`).Scan(&headingCount); err != nil {
		t.Fatal(err)
	}
	if headingCount != 4 {
		t.Errorf("headings = %d, want 4", headingCount)
	}

	var title string
	if err := store.db.QueryRow(`SELECT title FROM documents WHERE id = 'rfp-2026'`).Scan(&title); err != nil {
		t.Fatal(err)
	}
	if title != "Request for Proposal" {
		t.Errorf("title = %q", title)
	}
}

func TestIngest_SkipsUnchangedFiles(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-a")

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", summary.Skipped)
	}
	if summary.Indexed != 0 {
		t.Errorf("indexed = %d, want 0", summary.Indexed)
	}
	if !strings.Contains(buf.String(), "skipped doc-a") {
		t.Errorf("log %q missing skip line", buf.String())
	}
}

func TestIngest_ReindexesChangedFiles(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-a")

	// Rewrite with a different outline and a newer mod time.
	changed := types.DocumentOutline{
		Title: "Proposal doc-a",
		Outline: []types.OutlineEntry{
			{Level: types.LevelH1, Text: "Revised Introduction", Page: 1},
		},
	}
	writeOutlineFile(t, tmpDir, "doc-a", changed)
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(filepath.Join(tmpDir, "output", "doc-a.json"), future, future); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Updated != 1 {
		t.Errorf("updated = %d, want 1", summary.Updated)
	}

	var headingCount int
	if err := store.db.QueryRow(`SELECT count(*) FROM headings WHERE doc_id = 'doc-a'`).Scan(&headingCount); err != nil {
		t.Fatal(err)
	}
	if headingCount != 1 {
		t.Errorf("headings after update = %d, want 1", headingCount)
	}
}

func TestIngest_MalformedJSONIsIsolated(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeOutlineFile(t, tmpDir, "good", sampleOutline("Good Document"))
	badPath := filepath.Join(tmpDir, "output", "bad.json")
	if err := os.WriteFile(badPath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Indexed != 1 {
		t.Errorf("indexed = %d, want 1", summary.Indexed)
	}
	if summary.Failed != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed)
	}
}

func TestIngest_RejectsInvalidLevel(t *testing.T) {
	store, tmpDir := testSetup(t)
	doc := types.DocumentOutline{
		Title:   "Bad Levels",
		Outline: []types.OutlineEntry{{Level: "H4", Text: "Too deep", Page: 9}},
	}
	writeOutlineFile(t, tmpDir, "bad-level", doc)

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed)
	}
}

// --- query tests ---

func TestQuery_FullText(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-a")

	results, err := store.Query(context.Background(), QueryOptions{Query: "evaluation"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Text != "Evaluation Criteria" {
		t.Errorf("text = %q", results[0].Text)
	}
	if results[0].DocTitle != "Proposal doc-a" {
		t.Errorf("doc title = %q", results[0].DocTitle)
	}
}

func TestQuery_LevelFilter(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-a")

	results, err := store.Query(context.Background(), QueryOptions{Level: types.LevelH1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Level != types.LevelH1 {
			t.Errorf("level = %q, want H1", r.Level)
		}
	}
	// Structured queries come back in outline position order.
	if results[0].Pos > results[1].Pos {
		t.Errorf("results out of position order: %+v", results)
	}
}

func TestQuery_DocFilterAndLimit(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-a")
	ingestHelper(t, store, tmpDir, "doc-b")

	results, err := store.Query(context.Background(), QueryOptions{DocID: "doc-b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for _, r := range results {
		if r.DocID != "doc-b" {
			t.Errorf("doc = %q, want doc-b", r.DocID)
		}
	}

	limited, err := store.Query(context.Background(), QueryOptions{DocID: "doc-b", MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d results with limit 2", len(limited))
	}
}

func TestDocuments(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-b")
	ingestHelper(t, store, tmpDir, "doc-a")

	docs, err := store.Documents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].ID != "doc-a" || docs[1].ID != "doc-b" {
		t.Errorf("documents out of order: %+v", docs)
	}
	if docs[0].HeadingCount != 4 {
		t.Errorf("heading count = %d, want 4", docs[0].HeadingCount)
	}
}

// --- export tests ---

func TestExportYAMLWrittenAfterIngest(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-a")

	exportPath := filepath.Join(tmpDir, "index", "export.yaml")
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export.yaml not written: %v", err)
	}
	if !strings.Contains(string(data), "Evaluation Criteria") {
		t.Error("export.yaml missing heading text")
	}
}

func TestExportJSON(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-a")

	if err := store.ExportJSON(context.Background(), QueryOptions{Level: types.LevelH1}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "index", "export.json"))
	if err != nil {
		t.Fatal(err)
	}

	var entries []ExportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Level != "H1" {
			t.Errorf("level = %q, want H1", e.Level)
		}
	}
}
