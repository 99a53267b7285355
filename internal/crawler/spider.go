package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/registerwatch/registerscan/internal/model"
)

// RecordSink receives the output record stream. Emit is called once per
// record, in emission order: a page's Subject first, then its Interests
// in document order. The spider serializes calls, so implementations
// need not be safe for concurrent use.
type RecordSink interface {
	Emit(record model.Record) error
}

// Spider walks the register from seed index pages to subject pages and
// streams typed records to the sink. Index pages are walked
// sequentially; subject pages are fetched by a bounded pool of workers.
//
// The only shared mutable state across subject parses is the visited
// set, the page budget and the report; each parse is otherwise
// self-contained and their relative order carries no meaning.
type Spider struct {
	// client performs all HTTP fetches. Retry and timeout semantics
	// belong to it, not to the spider.
	client *http.Client

	// filter admits index links for following.
	filter *LinkFilter

	// sink receives emitted records.
	sink RecordSink

	// report accumulates run statistics and the page visit log.
	report *model.CrawlReport

	// concurrency bounds in-flight subject fetches.
	concurrency int

	// delay spaces requests as a politeness measure.
	delay time.Duration

	// maxPages caps total fetches per run, index pages included.
	maxPages int

	// maxBodySize limits how much of a response body is read.
	maxBodySize int64

	// userAgent is sent with every request.
	userAgent string

	// sourceDocument labels the register edition on emitted records.
	sourceDocument string

	logger *slog.Logger

	// mu guards visited and pageCount.
	mu        sync.Mutex
	visited   map[string]bool
	pageCount int

	// emitMu keeps each page's subject-then-interests block contiguous
	// in the output stream.
	emitMu sync.Mutex
}

// Option configures a Spider.
type Option func(*Spider)

// WithConcurrency bounds the number of in-flight subject fetches.
func WithConcurrency(n int) Option {
	return func(s *Spider) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithDelay sets the politeness delay between requests.
func WithDelay(d time.Duration) Option {
	return func(s *Spider) {
		s.delay = d
	}
}

// WithMaxPages caps the total number of fetches per run.
func WithMaxPages(n int) Option {
	return func(s *Spider) {
		if n > 0 {
			s.maxPages = n
		}
	}
}

// WithMaxBodySize limits the response body size read per document.
func WithMaxBodySize(size int64) Option {
	return func(s *Spider) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Spider) {
		s.userAgent = ua
	}
}

// WithSourceDocument sets the register edition label stamped on records.
func WithSourceDocument(label string) Option {
	return func(s *Spider) {
		s.sourceDocument = label
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spider) {
		s.logger = logger
	}
}

// Spider defaults. Generous page cap because one register edition lists
// several hundred members.
const (
	defaultConcurrency = 4
	defaultMaxPages    = 800
	defaultMaxBodySize = 5 * 1024 * 1024
	defaultUserAgent   = "registerscan/1.0 (+https://github.com/registerwatch/registerscan)"
)

// NewSpider creates a Spider. The client is required rather than built
// internally so tests and callers control transport, timeout and retry
// behavior.
func NewSpider(client *http.Client, filter *LinkFilter, sink RecordSink, report *model.CrawlReport, opts ...Option) *Spider {
	s := &Spider{
		client:      client,
		filter:      filter,
		sink:        sink,
		report:      report,
		concurrency: defaultConcurrency,
		maxPages:    defaultMaxPages,
		maxBodySize: defaultMaxBodySize,
		userAgent:   defaultUserAgent,
		visited:     make(map[string]bool),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Crawl walks the register from the given seeds. Seeds and discovered
// index pages are fetched sequentially; subject pages concurrently.
//
// Fetch and parse failures on individual pages are recorded and
// skipped. Crawl fails only when no document at all could be fetched,
// when the sink fails, or when the context is cancelled — in the last
// case records already emitted remain valid.
func (s *Spider) Crawl(ctx context.Context, seeds []string) error {
	if len(seeds) == 0 {
		return ErrNoSeeds
	}

	// Index walk: seeds first, then index pages they link to.
	queue := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		if s.markVisited(seed) {
			queue = append(queue, seed)
		}
	}

	var subjects []string
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageURL := queue[0]
		queue = queue[1:]

		doc, base, err := s.fetchDocument(ctx, pageURL)
		if err != nil {
			s.logger.Warn("index fetch failed", "url", pageURL, "error", err)
			s.report.AddFetchFailure(pageURL, err)
			continue
		}

		links := ParseIndex(doc, base, s.filter)
		s.logger.Debug("parsed index",
			"url", pageURL,
			"subjectLinks", len(links.Subjects),
			"indexLinks", len(links.Indexes),
		)

		for _, link := range links.Indexes {
			if s.markVisited(link) {
				queue = append(queue, link)
			}
		}
		for _, link := range links.Subjects {
			if s.markVisited(link) {
				subjects = append(subjects, link)
			}
		}
	}

	// Subject walk: bounded concurrent fetches, order-independent.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, subjectURL := range subjects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.processSubjectPage(gctx, subjectURL)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if s.report.PagesFetched == 0 {
		return fmt.Errorf("%w: seeds %v", ErrSourceUnreachable, seeds)
	}
	return nil
}

// processSubjectPage fetches, parses and emits one subject page.
// Returns an error only for sink failures; fetch failures and missing
// identities degrade to report entries.
func (s *Spider) processSubjectPage(ctx context.Context, pageURL string) error {
	doc, _, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		s.logger.Warn("subject fetch failed", "url", pageURL, "error", err)
		s.report.AddFetchFailure(pageURL, err)
		return nil
	}

	page, err := ParseSubjectPage(doc, pageURL, s.sourceDocument, time.Now().UTC())
	if err != nil {
		// MissingIdentity: skip the page, emit nothing for it.
		s.logger.Warn("skipping subject page", "url", pageURL, "error", err)
		s.report.AddSkippedPage()
		return nil
	}

	return s.emitPage(page)
}

// emitPage streams one page's records: Subject first, then Interests in
// document order, contiguous in the output stream.
func (s *Spider) emitPage(page *SubjectPage) error {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	if err := s.sink.Emit(page.Subject); err != nil {
		return fmt.Errorf("emit subject: %w", err)
	}
	s.report.AddSubject(page.Subject.FullName)

	for i := range page.Interests {
		if err := s.sink.Emit(&page.Interests[i]); err != nil {
			return fmt.Errorf("emit interest: %w", err)
		}
		s.report.AddInterest(page.Interests[i].Type)
	}

	s.logger.Debug("emitted subject page",
		"subject", page.Subject.FullName,
		"interests", len(page.Interests),
	)
	return nil
}

// fetchDocument retrieves and parses one HTML document, recording the
// visit on the report. Non-HTML responses and error statuses are fetch
// failures.
func (s *Spider) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, *url.URL, error) {
	if !s.reservePage() {
		return nil, nil, fmt.Errorf("page budget of %d exhausted", s.maxPages)
	}

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return nil, nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, err
	}

	s.report.AddPage(model.PageVisit{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentHash: model.HashContent(body),
		FetchedAt:   time.Now().UTC(),
	})

	return doc, base, nil
}

// markVisited records a URL in the visited set. Returns false when the
// URL was already present. Safe under concurrent subject fetches.
func (s *Spider) markVisited(rawURL string) bool {
	key := normalizeURL(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visited[key] {
		return false
	}
	s.visited[key] = true
	return true
}

// reservePage claims one unit of the page budget.
func (s *Spider) reservePage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pageCount >= s.maxPages {
		return false
	}
	s.pageCount++
	return true
}

// normalizeURL canonicalizes a URL for deduplication: fragments never
// change content, and an empty path equals "/".
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
