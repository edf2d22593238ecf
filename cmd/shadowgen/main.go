// Package main is the entry point for the shadowgen CLI.
// It rolls complete first-level Shadowdark characters and renders them as
// markdown character sheets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "shadowgen",
	Short: "Shadowdark character and party generator",
	Long: `Shadowgen rolls complete first-level Shadowdark adventurers: ability
scores, class, ancestry, talents, spells, languages, and starting gear,
rendered as markdown character sheets.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log output format: json or console")
	rootCmd.AddCommand(generateCmd)
}
