//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runEngine executes the built CLI binary with the given arguments.
func runEngine(args ...string) error {
	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", binName, args, err)
	}
	return nil
}

// Extract runs outline extraction over input/ and writes outlines to output/.
func Extract() error {
	mg.Deps(Build)
	return runEngine("extract")
}

// Index ingests extracted outlines into the SQLite index under index/.
func Index() error {
	mg.Deps(Extract)
	return runEngine("index", "store")
}

// Report renders Markdown tables of contents from output/ into reports/.
func Report() error {
	mg.Deps(Extract)
	return runEngine("report")
}

// Pipeline runs the full extract, index, and report pipeline.
func Pipeline() error {
	mg.Deps(Index, Report)
	return nil
}
