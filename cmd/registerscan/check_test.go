package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeRecordFile writes a JSON array with n subjects and m interests.
func writeRecordFile(t *testing.T, subjects, interests int) string {
	t.Helper()

	var entries []string
	for i := 0; i < subjects; i++ {
		entries = append(entries, fmt.Sprintf(
			`{"full_name":"Member %d","type":"politician","parliament_id":"member-%d","is_current_mp":true,"source_url":"u","scrape_date":"2023-06-12T00:00:00Z"}`, i, i))
	}
	for i := 0; i < interests; i++ {
		entries = append(entries, fmt.Sprintf(
			`{"person_name":"Member %d","type":"employment","description":"d","source_document":"s","source_url":"u","scrape_date":"2023-06-12T00:00:00Z"}`, i%max(subjects, 1)))
	}

	path := filepath.Join(t.TempDir(), "records.json")
	content := "[" + strings.Join(entries, ",") + "]"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write record file: %v", err)
	}
	return path
}

// TestCheckCmd tests the standalone quality gate.
func TestCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("passing file", func(t *testing.T) {
		t.Parallel()

		path := writeRecordFile(t, 10, 50)

		var stdout bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&stdout)
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"check", path})

		if err := root.Execute(); err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if !strings.Contains(stdout.String(), "passed: 10 subjects, 50 interests") {
			t.Errorf("unexpected output: %q", stdout.String())
		}
	})

	t.Run("failing file exits non-zero", func(t *testing.T) {
		t.Parallel()

		path := writeRecordFile(t, 2, 3)

		var stderr bytes.Buffer
		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetErr(&stderr)
		root.SetArgs([]string{"check", path})

		err := root.Execute()
		if err == nil {
			t.Fatal("expected gate failure")
		}
		if !strings.Contains(err.Error(), "failed the quality gate") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("custom thresholds", func(t *testing.T) {
		t.Parallel()

		path := writeRecordFile(t, 2, 3)

		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"check", path, "--min-subjects", "2", "--min-interests", "3"})

		if err := root.Execute(); err != nil {
			t.Errorf("expected pass with relaxed thresholds, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"check", filepath.Join(t.TempDir(), "absent.json")})

		if err := root.Execute(); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
