package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/registerwatch/registerscan/internal/crawler"
	"github.com/registerwatch/registerscan/internal/database"
	"github.com/registerwatch/registerscan/internal/model"
	"github.com/registerwatch/registerscan/internal/quality"
	"github.com/registerwatch/registerscan/internal/report"
)

// CrawlStep walks the register and streams records to the sink.
// This is the foundational step: every later step works on the counts
// and logs it leaves on the report.
type CrawlStep struct {
	// spider is the configured crawler.
	spider *crawler.Spider

	// seeds are the index URLs to start from.
	seeds []string

	// sink is closed after the crawl so partial output is finalized
	// even when the crawl fails.
	sink report.Sink
}

// NewCrawlStep creates the crawl step. The spider must have been
// constructed with the same report the pipeline executes against and
// with the given sink.
func NewCrawlStep(spider *crawler.Spider, sink report.Sink, seeds []string) *CrawlStep {
	return &CrawlStep{
		spider: spider,
		seeds:  seeds,
		sink:   sink,
	}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl and finalizes the output stream.
func (s *CrawlStep) Do(ctx context.Context, rep *model.CrawlReport) error {
	crawlErr := s.spider.Crawl(ctx, s.seeds)

	// Close regardless of the crawl outcome: a partial stream must
	// still be a well-formed document.
	if closeErr := s.sink.Close(); closeErr != nil && crawlErr == nil {
		crawlErr = closeErr
	}

	rep.Finish()
	return crawlErr
}

// GateStep validates the run's record counts against the quality
// thresholds. Violations are recorded on the report; the step fails
// when any exist, so a gated run exits non-zero while the later
// steps (history, summary) still observe the violations.
type GateStep struct {
	thresholds quality.Thresholds
}

// NewGateStep creates the gate step with the given thresholds.
func NewGateStep(thresholds quality.Thresholds) *GateStep {
	return &GateStep{thresholds: thresholds}
}

// Name returns the step name.
func (s *GateStep) Name() string {
	return "quality_gate"
}

// Do checks the counts and records violations.
func (s *GateStep) Do(_ context.Context, rep *model.CrawlReport) error {
	violations := quality.CheckCounts(rep.Subjects, rep.Interests, s.thresholds)
	for _, v := range violations {
		rep.AddGateViolation(v)
	}
	if len(violations) > 0 {
		return &GateError{Violations: violations}
	}
	return nil
}

// GateError reports a failed quality gate.
type GateError struct {
	// Violations are the individual findings.
	Violations []string
}

// Error implements the error interface.
func (e *GateError) Error() string {
	if len(e.Violations) == 1 {
		return "quality gate failed: " + e.Violations[0]
	}
	return "quality gate failed: " + e.Violations[0] + " (and more)"
}

// PersistStep saves the finished run to the crawl-history database.
type PersistStep struct {
	db     *database.CrawlDB
	logger *slog.Logger
}

// NewPersistStep creates the persistence step.
func NewPersistStep(db *database.CrawlDB, logger *slog.Logger) *PersistStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistStep{db: db, logger: logger}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist_history"
}

// Do saves the run.
func (s *PersistStep) Do(ctx context.Context, rep *model.CrawlReport) error {
	runID, err := s.db.SaveRun(ctx, rep)
	if err != nil {
		return err
	}
	s.logger.Debug("run persisted", "runID", runID, "database", s.db.Path())
	return nil
}

// SummaryStep renders the run summary as Markdown.
type SummaryStep struct {
	output io.Writer
}

// NewSummaryStep creates the summary step writing to the given output.
func NewSummaryStep(output io.Writer) *SummaryStep {
	return &SummaryStep{output: output}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do renders the summary.
func (s *SummaryStep) Do(_ context.Context, rep *model.CrawlReport) error {
	return report.NewMarkdownWriter(s.output).WriteSummary(rep)
}
