package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/registerwatch/registerscan/internal/model"
	"github.com/registerwatch/registerscan/internal/quality"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a record file against the quality gate",
		Long: `Check re-runs the quality gate on an existing record file.

It decodes the file (JSON array or NDJSON), verifies that every record
carries its required fields, and checks the subject and interest counts
against the thresholds. The command exits non-zero when any violation
is found, which makes it usable as a gate in a scheduler or CI job.

Examples:
  # Check a crawl output with the default thresholds
  registerscan check register_of_interests_2023-06-12.json

  # Relaxed thresholds for a partial register
  registerscan check --min-subjects 1 --min-interests 1 partial.json`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	cmd.Flags().Int("min-subjects", quality.DefaultMinSubjects,
		"Minimum subject records required")
	cmd.Flags().Int("min-interests", quality.DefaultMinInterests,
		"Minimum interest records required")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	minSubjects, err := cmd.Flags().GetInt("min-subjects")
	if err != nil {
		return err
	}
	minInterests, err := cmd.Flags().GetInt("min-interests")
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path) //nolint:gosec // User-provided record path is intentional
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}

	records, err := model.DecodeRecords(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	violations := quality.CheckRecords(records, quality.Thresholds{
		MinSubjects:  minSubjects,
		MinInterests: minInterests,
	})

	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintln(cmd.ErrOrStderr(), v)
		}
		return fmt.Errorf("%s failed the quality gate with %d violations", path, len(violations))
	}

	subjects, interests := 0, 0
	for _, record := range records {
		if record.RecordKind() == "subject" {
			subjects++
		} else {
			interests++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s passed: %d subjects, %d interests\n",
		path, subjects, interests)

	return nil
}
