// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/outline"
	"github.com/pdiddy/outline-engine/internal/pdftext"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <pdf>",
	Short: "Show the font-size census and derived thresholds for a PDF",
	Long: `Inspect prints the font-size histogram for a single PDF together with
the derived body size, heading level thresholds, and detected title.
Useful for understanding why a document produced a particular outline.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	var reader pdftext.Reader
	spans, err := reader.ReadSpans(args[0])
	if err != nil {
		return err
	}

	analysis := outline.Analyze(spans)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	fmt.Printf("Pages:  %d\n", analysis.PageCount)
	fmt.Printf("Spans:  %d\n", analysis.SpanCount)
	fmt.Printf("Lines:  %d\n", analysis.LineCount)
	fmt.Printf("Title:  %s\n", analysis.Title)
	fmt.Printf("Body:   %dpt\n\n", analysis.BodySize)

	fmt.Printf("%-6s  %s\n", "Size", "Count")
	for _, sc := range analysis.Sizes {
		fmt.Printf("%-6d  %d\n", sc.Size, sc.Count)
	}

	if len(analysis.Levels) == 0 {
		fmt.Println("\nNo heading sizes above body text.")
		return nil
	}
	fmt.Println()
	for _, level := range []string{"H1", "H2", "H3"} {
		if size, ok := analysis.Levels[level]; ok {
			fmt.Printf("%s = %dpt\n", level, size)
		}
	}
	return nil
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output the analysis as JSON")

	rootCmd.AddCommand(inspectCmd)
}
