package report

import (
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/registerwatch/registerscan/internal/model"
)

// MarkdownWriter renders a finished run's statistics as Markdown.
// This format is designed for run logs checked into documentation and
// for pasting into issue trackers.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// WriteSummary renders the crawl report.
func (w *MarkdownWriter) WriteSummary(report *model.CrawlReport) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeCounts(md, report)
	w.writeBreakdown(md, report)
	w.writeFailures(md, report)
	w.writeViolations(md, report)

	return md.Build()
}

// writeHeader writes the run identification table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.CrawlReport) {
	md.H1("Register Crawl Report")
	md.PlainText("")

	rows := [][]string{
		{"Run Date", report.RunDate},
		{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Duration", report.Duration().Round(10 * time.Millisecond).String()},
		{"Status", w.statusText(report)},
	}
	if report.OutputPath != "" {
		rows = append(rows, []string{"Output", "`" + report.OutputPath + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusText summarizes the run outcome.
func (w *MarkdownWriter) statusText(report *model.CrawlReport) string {
	if len(report.GateViolations) > 0 {
		return "❌ Gate failed (" + strconv.Itoa(len(report.GateViolations)) + " violations)"
	}
	if len(report.FetchFailures) > 0 {
		return "⚠️ Complete with fetch failures"
	}
	return "✅ Complete"
}

// writeCounts writes the headline counters.
func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Counts")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Pages fetched", strconv.Itoa(report.PagesFetched)},
			{"Pages skipped", strconv.Itoa(report.PagesSkipped)},
			{"Subjects", strconv.Itoa(report.Subjects)},
			{"Interests", strconv.Itoa(report.Interests)},
		},
	})
	md.PlainText("")
}

// writeBreakdown writes the per-type interest table, sorted by type
// name for stable output.
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, report *model.CrawlReport) {
	if len(report.InterestsByType) == 0 {
		return
	}

	types := make([]string, 0, len(report.InterestsByType))
	for t := range report.InterestsByType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{t, strconv.Itoa(report.InterestsByType[model.InterestType(t)])})
	}

	md.H2("Interests by Type")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Type", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures lists pages that could not be retrieved.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.CrawlReport) {
	if len(report.FetchFailures) == 0 {
		return
	}

	urls := make([]string, 0, len(report.FetchFailures))
	for u := range report.FetchFailures {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	items := make([]string, 0, len(urls))
	for _, u := range urls {
		items = append(items, "`"+u+"`: "+report.FetchFailures[u])
	}

	md.H2("Fetch Failures")
	md.PlainText("")
	md.BulletList(items...)
	md.PlainText("")
}

// writeViolations lists quality-gate findings as a warning block.
func (w *MarkdownWriter) writeViolations(md *markdown.Markdown, report *model.CrawlReport) {
	if len(report.GateViolations) == 0 {
		return
	}

	md.H2("Quality Gate Violations")
	md.PlainText("")
	md.Warningf("This run failed the quality gate with %d violations.", len(report.GateViolations))
	md.PlainText("")
	md.BulletList(report.GateViolations...)
	md.PlainText("")
}
