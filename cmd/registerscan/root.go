// Package main provides the entry point for the registerscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for registerscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registerscan",
		Short: "Crawler for registers of members' financial interests",
		Long: `registerscan crawls published registers of members' financial interests
and extracts structured disclosure records from the HTML pages.

It walks the register's index pages to each member's page, segments the
interest entries, classifies them, and extracts amounts and dates into
a typed JSON record stream. Each run is quality-gated and recorded in a
local history database for run-to-run comparison.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
