package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/registerwatch/registerscan/internal/crawler"
	"github.com/registerwatch/registerscan/internal/database"
	"github.com/registerwatch/registerscan/internal/model"
	"github.com/registerwatch/registerscan/internal/quality"
	"github.com/registerwatch/registerscan/internal/report"
)

// TestGateStep tests violation recording and the gate error.
func TestGateStep(t *testing.T) {
	t.Parallel()

	t.Run("passes a plausible run", func(t *testing.T) {
		t.Parallel()

		rep := model.NewCrawlReport("2023-06-12", nil)
		for i := 0; i < 10; i++ {
			rep.AddSubject(fmt.Sprintf("Member %d", i))
			for j := 0; j < 5; j++ {
				rep.AddInterest(model.InterestMiscellaneous)
			}
		}

		step := NewGateStep(quality.DefaultThresholds())
		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rep.GateViolations) != 0 {
			t.Errorf("expected no violations, got %v", rep.GateViolations)
		}
	})

	t.Run("fails an implausible run and records violations", func(t *testing.T) {
		t.Parallel()

		rep := model.NewCrawlReport("2023-06-12", nil)
		rep.AddSubject("Lone Member")

		step := NewGateStep(quality.DefaultThresholds())
		err := step.Do(context.Background(), rep)

		var gateErr *GateError
		if !errors.As(err, &gateErr) {
			t.Fatalf("expected GateError, got %v", err)
		}
		if len(gateErr.Violations) != 2 {
			t.Errorf("expected 2 violations, got %v", gateErr.Violations)
		}
		if len(rep.GateViolations) != 2 {
			t.Errorf("expected violations recorded on report, got %v", rep.GateViolations)
		}
	})
}

// TestPersistStep tests saving a run through the step.
func TestPersistStep(t *testing.T) {
	t.Parallel()

	db, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	rep := model.NewCrawlReport("2023-06-12", nil)
	rep.AddSubject("Alice Example")
	rep.Finish()

	step := NewPersistStep(db, nil)
	if err := step.Do(context.Background(), rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runs, err := db.RecentRuns(context.Background(), 1)
	if err != nil {
		t.Fatalf("failed to query runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Subjects != 1 {
		t.Errorf("unexpected persisted runs: %v", runs)
	}
}

// TestSummaryStep tests summary rendering through the step.
func TestSummaryStep(t *testing.T) {
	t.Parallel()

	rep := model.NewCrawlReport("2023-06-12", nil)
	rep.AddSubject("Alice Example")
	rep.Finish()

	var buf bytes.Buffer
	if err := NewSummaryStep(&buf).Do(context.Background(), rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "# Register Crawl Report") {
		t.Error("expected rendered summary")
	}
}

// TestCrawlStep runs the crawl step against a synthetic register and
// checks the finalized record stream.
func TestCrawlStep(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/registers/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><div class="article-body">
			<a href="/financial-interests/alice-example/">Alice Example</a>
		</div></body></html>`)
	})
	mux.HandleFunc("/financial-interests/alice-example/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><div class="article-body">
			<h1>Alice Example</h1>
			<h2>1. Employment and earnings</h2>
			<h3>Company X</h3>
			<p>Director, Company X. Registered on 1 January 2023. £5,000.</p>
		</div></body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	serverHost, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	filter, err := crawler.NewLinkFilter([]string{serverHost.Hostname()}, `register-of-members-financial-interests/\d+`)
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	var buf bytes.Buffer
	sink := report.NewJSONWriter(&buf)
	rep := model.NewCrawlReport("2023-06-12", []string{server.URL + "/registers/"})
	spider := crawler.NewSpider(server.Client(), filter, sink, rep)

	step := NewCrawlStep(spider, sink, []string{server.URL + "/registers/"})
	if err := step.Do(context.Background(), rep); err != nil {
		t.Fatalf("crawl step failed: %v", err)
	}

	records, err := model.DecodeRecords(buf.Bytes())
	if err != nil {
		t.Fatalf("output is not a decodable record array: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
	if rep.FinishedAt.IsZero() {
		t.Error("expected report to be finished")
	}
}
