// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the outline-engine CLI.
// See docs/ARCHITECTURE § Pipeline Interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the outline-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "outline-engine",
	Short: "Offline PDF outline extraction",
	Long: `outline-engine extracts a structured outline (title plus H1/H2/H3
headings) from PDF files using a font-size heuristic, entirely offline.

Each stage is a subcommand: extract scans a directory of PDFs and writes
one JSON outline per file, inspect shows the font-size census for a single
file, index builds a searchable SQLite index over extracted outlines, and
report renders outlines as Markdown tables of contents.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./outline-engine.yaml or ~/.config/outline-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("outline-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "outline-engine"))
		}
	}

	viper.SetEnvPrefix("OUTLINE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// flagOrConfig resolves a string setting: an explicitly set flag wins,
// then the viper config key, then the flag's default.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
