package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/registerwatch/registerscan/internal/quality"
)

// Default configuration values.
// These values reflect the published structure of the UK register and
// polite crawling of a public government site.
const (
	// DefaultSeed is the register landing page listing published
	// editions. Each edition links to the member pages.
	DefaultSeed = "https://www.parliament.uk/mps-lords-and-offices/standards-and-financial-interests/parliamentary-commissioner-for-standards/registers-of-interests/register-of-members-financial-interests/"

	// DefaultAllowedDomain restricts the crawl to the register's own
	// site. Subdomains are admitted ("www.parliament.uk").
	DefaultAllowedDomain = "parliament.uk"

	// DefaultIndexPathPattern matches per-edition index pages, whose
	// paths carry the edition's numeric date stamp.
	DefaultIndexPathPattern = `register-of-members-financial-interests/\d+`

	// DefaultOutputPattern is the output file path. The {date} token is
	// replaced with the run date, matching the downstream loader's
	// naming convention.
	DefaultOutputPattern = "register_of_interests_{date}.json"

	// DefaultTimeout is the per-request timeout. The register is a
	// clearnet government site; 30 seconds covers slow responses
	// without stalling a run on a dead page.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency bounds simultaneous subject-page fetches.
	// The register lists hundreds of members; four workers finish a
	// run quickly while staying well below anything resembling load.
	DefaultConcurrency = 4

	// DefaultCrawlDelay spaces requests as a politeness measure.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultMaxPages caps fetches per run. An edition lists several
	// hundred members plus a handful of index pages; 800 covers that
	// with headroom while stopping runaway crawls.
	DefaultMaxPages = 800

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB is sufficient for register pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies registerscan in HTTP requests.
	// A descriptive User-Agent lets site operators identify crawler
	// traffic in their logs.
	DefaultUserAgent = "registerscan/1.0 (+https://github.com/registerwatch/registerscan)"

	// AppName is the application name used for XDG directory paths.
	AppName = "registerscan"
)

// DatePattern is the token replaced with the run date in the output
// path.
const DatePattern = "{date}"

// RunDateLayout is the run date's wire format.
const RunDateLayout = "2006-01-02"

// Config holds all configuration options for a crawl run.
// This struct is populated from defaults, the configuration file and
// CLI flags (in that order), then passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested
// structs for simplicity. The number of options is manageable, and
// nesting would add complexity without significant benefit.
type Config struct {
	// Seeds are the index URLs the crawl starts from. Defaults to the
	// register landing page.
	Seeds []string

	// AllowedDomains restricts which hosts the crawl may touch.
	AllowedDomains []string

	// IndexPathPattern is the regular expression an index link's path
	// must match to be followed.
	IndexPathPattern string

	// RunDate is the logical date of the run in RunDateLayout format.
	// Defaults to today. It parameterizes the output path and is
	// recorded in the crawl history.
	RunDate string

	// OutputPattern is the output file path, with the {date} token
	// replaced by RunDate.
	OutputPattern string

	// SourceDocument labels the register edition on emitted records.
	SourceDocument string

	// SummaryPath is the path to write the Markdown run summary to.
	// Empty disables the summary.
	SummaryPath string

	// NDJSON switches the output from a JSON array to newline-delimited
	// JSON.
	NDJSON bool

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Concurrency bounds simultaneous subject-page fetches.
	Concurrency int

	// CrawlDelay is the politeness delay between requests.
	CrawlDelay time.Duration

	// MaxPages caps total fetches per run.
	MaxPages int

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MinSubjects and MinInterests are the quality-gate thresholds.
	MinSubjects  int
	MinInterests int

	// DBDir is the directory holding the crawl-history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to persist the run to the history
	// database. Disabled with --no-db.
	SaveToDB bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .registerscan in the current directory and
	// then in the user's home directory.
	ConfigFilePath string

	// Registers holds named register configurations loaded from the
	// config file.
	Registers *File
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Seeds:            []string{DefaultSeed},
		AllowedDomains:   []string{DefaultAllowedDomain},
		IndexPathPattern: DefaultIndexPathPattern,
		RunDate:          time.Now().Format(RunDateLayout),
		OutputPattern:    DefaultOutputPattern,
		Timeout:          DefaultTimeout,
		Concurrency:      DefaultConcurrency,
		CrawlDelay:       DefaultCrawlDelay,
		MaxPages:         DefaultMaxPages,
		MaxBodySize:      DefaultMaxBodySize,
		UserAgent:        DefaultUserAgent,
		MinSubjects:      quality.DefaultMinSubjects,
		MinInterests:     quality.DefaultMinInterests,
		DBDir:            XDGDataDir(),
		SaveToDB:         true,
	}
}

// OutputPath resolves the output pattern against the run date.
func (c *Config) OutputPath() string {
	return strings.ReplaceAll(c.OutputPattern, DatePattern, c.RunDate)
}

// XDGDataDir returns the XDG data directory for registerscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/registerscan
// On macOS: ~/Library/Application Support/registerscan
// On Windows: %LOCALAPPDATA%\registerscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for registerscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before the crawl begins.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}

	if len(c.AllowedDomains) == 0 {
		return ErrNoAllowedDomains
	}

	if _, err := time.Parse(RunDateLayout, c.RunDate); err != nil {
		return ErrInvalidRunDate
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// CrawlDelay must be non-negative
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.MinSubjects < 0 || c.MinInterests < 0 {
		return ErrInvalidThresholds
	}

	return nil
}
