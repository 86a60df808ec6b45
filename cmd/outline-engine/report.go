// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/report"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render extracted outlines as Markdown tables of contents",
	Long: `Report reads outline JSON files from the outlines directory and writes
one Markdown table of contents per document to the reports directory.
Headings are indented by level (H1, H2, H3).`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := types.ReportConfig{
		OutlinesDir: flagOrConfig(cmd, "outlines-dir", "report.outlines_dir"),
		ReportsDir:  flagOrConfig(cmd, "reports-dir", "report.reports_dir"),
	}

	summary, err := report.RenderAll(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d outline(s) failed rendering", summary.Failed)
	}
	return nil
}

func init() {
	reportCmd.Flags().String("outlines-dir", "output", "directory containing extracted outline JSON files")
	reportCmd.Flags().String("reports-dir", "reports", "directory Markdown reports are written to")

	rootCmd.AddCommand(reportCmd)
}
