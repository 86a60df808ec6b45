// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/index"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the outline index (store, query, export)",
	Long: `Index manages a local SQLite index built from extracted outlines.
Use subcommands to ingest outline JSON files, search headings, or export.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest extracted outlines into the index",
	Long: `Store reads outline JSON files from the outlines directory, ingests
them into a SQLite database with FTS5 indexing, and writes an export file.
Unchanged outlines are skipped on subsequent runs.`,
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d outline(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var indexQueryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Search indexed headings with full-text search and filters",
	Long: `Query searches heading text using FTS5 full-text search, structured
filters (level, document), or a combination of both. Use --docs to list
the indexed documents instead.`,
	RunE: runIndexQuery,
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	listDocs, _ := cmd.Flags().GetBool("docs")
	if listDocs {
		docs, err := store.Documents(context.Background())
		if err != nil {
			return err
		}
		for _, d := range docs {
			fmt.Printf("%-30s  %-50s  %d headings\n", d.ID, d.Title, d.HeadingCount)
		}
		return nil
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --level, or --doc")
	}

	results, err := store.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-5s  %-50s  %-25s  %s\n",
		"Rank", "Level", "Heading", "Document", "Page")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 95))

	for i, r := range results {
		text := r.Text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		doc := r.DocID
		if len(doc) > 25 {
			doc = doc[:22] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-5s  %-50s  %-25s  %d\n",
			i+1, r.Level, text, doc, r.Page)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the outline index to YAML or JSON",
	Long: `Export writes the full outline index (or a filtered subset) to
export.yaml or export.json in the index directory. Supports the same
filter flags as query for partial exports.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.IndexConfig{
		IndexDir:    flagOrConfig(cmd, "index-dir", "index.index_dir"),
		OutlinesDir: flagOrConfig(cmd, "outlines-dir", "index.outlines_dir"),
		MaxResults:  maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) index.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	level, _ := cmd.Flags().GetString("level")
	docID, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")

	return index.QueryOptions{
		Query:      queryText,
		Level:      types.HeadingLevel(strings.ToUpper(level)),
		DocID:      docID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", "index", "directory for the outline index database and exports")
	indexCmd.PersistentFlags().String("outlines-dir", "output", "directory containing extracted outline JSON files")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Query flags.
	indexQueryCmd.Flags().String("query", "", "full-text search query over heading text")
	indexQueryCmd.Flags().String("level", "", "filter by heading level: H1, H2, or H3")
	indexQueryCmd.Flags().String("doc", "", "filter by document ID")
	indexQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexQueryCmd.Flags().Bool("docs", false, "list indexed documents instead of searching")
	indexQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	indexExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	indexExportCmd.Flags().String("level", "", "filter by heading level for partial export")
	indexExportCmd.Flags().String("doc", "", "filter by document ID for partial export")
	indexExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	// Wire subcommands.
	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexQueryCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
