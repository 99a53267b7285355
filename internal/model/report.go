package model

import (
	"sync"
	"time"
)

// CrawlReport accumulates the outcome of one crawl run. It is threaded
// through the pipeline steps: the crawl step fills in counts and
// failures, the gate step records violations, and the summary step
// renders it for humans.
//
// All mutating methods are safe for concurrent use because subject
// pages are processed in parallel.
type CrawlReport struct {
	mu sync.Mutex

	// RunDate is the logical date of the run, used to parameterize the
	// output path. Not necessarily the wall-clock date.
	RunDate string `json:"run_date"`

	// Seeds are the index URLs the crawl started from.
	Seeds []string `json:"seeds"`

	// OutputPath is the resolved path the record stream was written to.
	OutputPath string `json:"output_path,omitempty"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// PagesFetched counts documents retrieved, index pages included.
	PagesFetched int `json:"pages_fetched"`

	// PagesSkipped counts subject pages skipped because no identity
	// could be parsed.
	PagesSkipped int `json:"pages_skipped"`

	// Subjects and Interests count emitted records.
	Subjects  int `json:"subjects"`
	Interests int `json:"interests"`

	// InterestsByType breaks down emitted interests by classified type.
	InterestsByType map[InterestType]int `json:"interests_by_type"`

	// FetchFailures records URLs that could not be retrieved, with the
	// failure text. These are non-fatal unless nothing at all could be
	// fetched.
	FetchFailures map[string]string `json:"fetch_failures,omitempty"`

	// GateViolations holds quality-gate findings recorded after the
	// crawl, one message per violation.
	GateViolations []string `json:"gate_violations,omitempty"`

	// Visits logs each fetched document for the crawl-history database.
	// Excluded from JSON: history is the database's concern.
	Visits []PageVisit `json:"-"`

	// SubjectNames lists emitted subject names in emission order, kept
	// for the run-to-run compare. The full records are not retained;
	// they stream straight to the sink.
	SubjectNames []string `json:"-"`
}

// NewCrawlReport creates a report for the given logical run date and seeds.
func NewCrawlReport(runDate string, seeds []string) *CrawlReport {
	return &CrawlReport{
		RunDate:         runDate,
		Seeds:           seeds,
		StartedAt:       time.Now(),
		InterestsByType: make(map[InterestType]int),
		FetchFailures:   make(map[string]string),
	}
}

// AddPage records a successfully fetched document.
func (r *CrawlReport) AddPage(visit PageVisit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PagesFetched++
	r.Visits = append(r.Visits, visit)
}

// AddSkippedPage records a subject page dropped for a missing identity.
func (r *CrawlReport) AddSkippedPage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PagesSkipped++
}

// AddSubject records one emitted Subject.
func (r *CrawlReport) AddSubject(fullName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Subjects++
	r.SubjectNames = append(r.SubjectNames, fullName)
}

// AddInterest records one emitted Interest of the given type.
func (r *CrawlReport) AddInterest(t InterestType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Interests++
	r.InterestsByType[t]++
}

// AddFetchFailure records a URL that could not be retrieved.
func (r *CrawlReport) AddFetchFailure(url string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FetchFailures[url] = err.Error()
}

// AddGateViolation records a quality-gate finding.
func (r *CrawlReport) AddGateViolation(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.GateViolations = append(r.GateViolations, msg)
}

// Finish stamps the end of the run.
func (r *CrawlReport) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FinishedAt = time.Now()
}

// Duration returns the elapsed run time, or the running time if the
// report has not been finished.
func (r *CrawlReport) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
