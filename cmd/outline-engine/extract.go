// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/internal/pdftext"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdfs...]",
	Short: "Extract document outlines from PDF files",
	Long: `Extract runs the font-size heuristic over PDF files and writes one
[name].json outline per input. With no arguments it processes every .pdf
in the input directory; explicit file arguments are processed instead.

Corrupt or unparseable files are logged and skipped; the batch continues
with the remaining files.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := types.ExtractConfig{
		InputDir:  flagOrConfig(cmd, "input-dir", "extract.input_dir"),
		OutputDir: flagOrConfig(cmd, "output-dir", "extract.output_dir"),
	}

	var reader pdftext.Reader

	var (
		summary outline.BatchSummary
		err     error
	)
	if len(args) > 0 {
		summary, err = outline.ExtractPaths(reader, args, cfg.OutputDir, os.Stdout)
	} else {
		summary, err = outline.ExtractAll(reader, cfg, os.Stdout)
	}
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed extraction", summary.Failed)
	}
	return nil
}

func init() {
	extractCmd.Flags().String("input-dir", "input", "directory scanned for .pdf files")
	extractCmd.Flags().String("output-dir", "output", "directory outlines are written to")

	rootCmd.AddCommand(extractCmd)
}
