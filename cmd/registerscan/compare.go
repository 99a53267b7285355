package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/registerwatch/registerscan/internal/config"
	"github.com/registerwatch/registerscan/internal/database"
)

// NewCompareCmd creates the compare command.
// This command compares the two most recent runs recorded in the
// history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the two most recent crawl runs",
		Long: `Compare shows what changed between the two most recent recorded runs.

It reads the local history database and reports:
- Subjects that appeared since the previous run
- Subjects that disappeared since the previous run
- Changes in the headline record counts

The comparison requires at least two recorded runs. Use 'registerscan
crawl' (without --no-db) to record runs.

Examples:
  # Compare the two most recent runs
  registerscan compare

  # List recent runs instead of comparing
  registerscan compare --list

  # Output the comparison in JSON format
  registerscan compare --json`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List recent runs instead of comparing")
	cmd.Flags().Int("limit", 10,
		"Number of runs to show with --list")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// RunComparison is the outcome of comparing two runs.
type RunComparison struct {
	// Current and Previous identify the compared runs.
	Current  database.RunSummary `json:"current"`
	Previous database.RunSummary `json:"previous"`

	// AddedSubjects are present in the current run only.
	AddedSubjects []string `json:"added_subjects"`

	// RemovedSubjects are present in the previous run only.
	RemovedSubjects []string `json:"removed_subjects"`

	// SubjectDelta and InterestDelta are current minus previous counts.
	SubjectDelta  int `json:"subject_delta"`
	InterestDelta int `json:"interest_delta"`
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// The database must already exist; compare never creates one.
	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}
		return listRuns(cmd, db, limit)
	}

	runs, err := db.RecentRuns(ctx, 2)
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}
	if len(runs) < 2 {
		return errors.New("at least two recorded runs are required (run 'registerscan crawl' first)")
	}

	comparison, err := compareRuns(cmd, db, runs[0], runs[1])
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(comparison)
	}

	printComparison(cmd, comparison)
	return nil
}

// listRuns prints recent runs, most recent first.
func listRuns(cmd *cobra.Command, db *database.CrawlDB, limit int) error {
	runs, err := db.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s  %d subjects, %d interests, %d pages",
			run.ID, run.RunDate, run.Subjects, run.Interests, run.PagesFetched)
		if run.GateViolations > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  [gate failed: %d violations]", run.GateViolations)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// compareRuns builds the comparison between two stored runs.
func compareRuns(cmd *cobra.Command, db *database.CrawlDB, current, previous database.RunSummary) (*RunComparison, error) {
	ctx := cmd.Context()

	currentNames, err := db.SubjectsForRun(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query current run subjects: %w", err)
	}
	previousNames, err := db.SubjectsForRun(ctx, previous.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query previous run subjects: %w", err)
	}

	return &RunComparison{
		Current:         current,
		Previous:        previous,
		AddedSubjects:   subtractNames(currentNames, previousNames),
		RemovedSubjects: subtractNames(previousNames, currentNames),
		SubjectDelta:    current.Subjects - previous.Subjects,
		InterestDelta:   current.Interests - previous.Interests,
	}, nil
}

// subtractNames returns the names in a but not in b, sorted.
func subtractNames(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, name := range b {
		inB[name] = true
	}

	result := make([]string, 0)
	seen := make(map[string]bool)
	for _, name := range a {
		if !inB[name] && !seen[name] {
			result = append(result, name)
			seen[name] = true
		}
	}
	sort.Strings(result)
	return result
}

// printComparison renders the comparison as text.
func printComparison(cmd *cobra.Command, c *RunComparison) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Comparing run #%d (%s) with run #%d (%s)\n\n",
		c.Current.ID, c.Current.RunDate, c.Previous.ID, c.Previous.RunDate)

	fmt.Fprintf(out, "Subjects:  %d (%+d)\n", c.Current.Subjects, c.SubjectDelta)
	fmt.Fprintf(out, "Interests: %d (%+d)\n", c.Current.Interests, c.InterestDelta)

	if len(c.AddedSubjects) > 0 {
		fmt.Fprintf(out, "\nNew subjects (%d):\n", len(c.AddedSubjects))
		for _, name := range c.AddedSubjects {
			fmt.Fprintf(out, "  + %s\n", name)
		}
	}
	if len(c.RemovedSubjects) > 0 {
		fmt.Fprintf(out, "\nDeparted subjects (%d):\n", len(c.RemovedSubjects))
		for _, name := range c.RemovedSubjects {
			fmt.Fprintf(out, "  - %s\n", name)
		}
	}
	if len(c.AddedSubjects) == 0 && len(c.RemovedSubjects) == 0 {
		fmt.Fprintln(out, "\nNo subject changes.")
	}
}
