package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/registerscan.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = ".registerscan"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new registerscan configuration file",
		Long: `Initialize creates a new .registerscan configuration file in the current
directory.

The generated file includes:
- The built-in UK Commons register as a named configuration
- Commented examples for additional registers
- Documentation for all available options

Examples:
  # Create .registerscan in current directory
  registerscan init

  # Create config file at a specific path
  registerscan init -o myconfig.yaml

  # Force overwrite existing file
  registerscan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/registerscan.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure registers, for example:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Seed URLs and allowed domains per register")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The source document label stamped on records")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Quality gate thresholds")

	return nil
}
