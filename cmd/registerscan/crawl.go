package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/registerwatch/registerscan/internal/config"
	"github.com/registerwatch/registerscan/internal/crawler"
	"github.com/registerwatch/registerscan/internal/database"
	"github.com/registerwatch/registerscan/internal/log"
	"github.com/registerwatch/registerscan/internal/model"
	"github.com/registerwatch/registerscan/internal/pipeline"
	"github.com/registerwatch/registerscan/internal/quality"
	"github.com/registerwatch/registerscan/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url...]",
		Short: "Crawl a register and extract disclosure records",
		Long: `Crawl walks a register of members' financial interests from its index
pages to each member's page and writes the extracted records as a JSON
array (or NDJSON with --ndjson).

After the crawl, the record counts are checked against the quality
thresholds; a run below them exits non-zero. Each run is recorded in
the local history database unless --no-db is given.

Examples:
  # Crawl the UK Commons register with defaults
  registerscan crawl

  # Crawl from an explicit seed with a fixed run date
  registerscan crawl --date 2023-06-12 https://www.parliament.uk/registers/

  # Stream NDJSON and write a Markdown run summary
  registerscan crawl --ndjson --output records.ndjson --summary run.md

  # Use a named register from the configuration file
  registerscan crawl -c .registerscan --register commons

Configuration file (.registerscan) example:
  registers:
    commons:
      seeds:
        - https://www.parliament.uk/registers/
      allowedDomains:
        - parliament.uk
      sourceDocument: "Register of Members' Financial Interests"`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputPattern,
		"Output file path; {date} is replaced with the run date")
	cmd.Flags().String("date", "",
		"Logical run date in YYYY-MM-DD format (default: today)")
	cmd.Flags().Bool("ndjson", false,
		"Write newline-delimited JSON instead of a JSON array")
	cmd.Flags().String("summary", "",
		"Write a Markdown run summary to the given path")
	cmd.Flags().String("source-document", "",
		"Register edition label stamped on every record")

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for each request")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of concurrent subject-page fetches")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Politeness delay between requests")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch per run")
	cmd.Flags().StringSlice("allow-domain", nil,
		"Domain allowed during the crawl (repeatable; default: parliament.uk)")

	// Quality gate flags
	cmd.Flags().Int("min-subjects", quality.DefaultMinSubjects,
		"Minimum subject records for the quality gate")
	cmd.Flags().Int("min-interests", quality.DefaultMinInterests,
		"Minimum interest records for the quality gate")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .registerscan in current or home directory)")
	cmd.Flags().String("register", "",
		"Named register configuration to apply from the config file")

	// History database
	cmd.Flags().Bool("no-db", false,
		"Do not record this run in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewCompactLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildCrawlConfig creates a Config from cobra command flags.
// Precedence: defaults, then the configuration file, then flags.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load register configurations from the config file.
	// If the user explicitly specified a path, error if not found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Registers, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Registers = &config.File{
			Registers: make(map[string]config.RegisterConfig),
		}
	}

	registerName, err := cmd.Flags().GetString("register")
	if err != nil {
		return nil, err
	}
	if registerName != "" {
		if _, ok := cfg.Registers.Registers[registerName]; !ok {
			return nil, fmt.Errorf("register %q not found in configuration file", registerName)
		}
		cfg.Apply(cfg.Registers.GetRegisterConfig(registerName))
	}

	if cmd.Flags().Changed("output") {
		if cfg.OutputPattern, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}

	runDate, err := cmd.Flags().GetString("date")
	if err != nil {
		return nil, err
	}
	if runDate != "" {
		cfg.RunDate = runDate
	}

	cfg.NDJSON, err = cmd.Flags().GetBool("ndjson")
	if err != nil {
		return nil, err
	}

	cfg.SummaryPath, err = cmd.Flags().GetString("summary")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("source-document") {
		if cfg.SourceDocument, err = cmd.Flags().GetString("source-document"); err != nil {
			return nil, err
		}
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	allowDomains, err := cmd.Flags().GetStringSlice("allow-domain")
	if err != nil {
		return nil, err
	}
	if len(allowDomains) > 0 {
		cfg.AllowedDomains = allowDomains
	}

	if cmd.Flags().Changed("min-subjects") {
		if cfg.MinSubjects, err = cmd.Flags().GetInt("min-subjects"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("min-interests") {
		if cfg.MinInterests, err = cmd.Flags().GetInt("min-interests"); err != nil {
			return nil, err
		}
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	// Positional arguments override the configured seeds.
	if len(args) > 0 {
		cfg.Seeds = args
	}

	return cfg, nil
}

// runCrawl executes the crawl.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	outputPath := cfg.OutputPath()

	logger.Info("starting crawl",
		"seeds", cfg.Seeds,
		"runDate", cfg.RunDate,
		"output", outputPath,
		"saveToDB", cfg.SaveToDB,
	)

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	outputFile, err := os.Create(outputPath) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outputFile.Close()

	var sink report.Sink
	if cfg.NDJSON {
		sink = report.NewNDJSONWriter(outputFile)
	} else {
		sink = report.NewJSONWriter(outputFile)
	}

	filter, err := crawler.NewLinkFilter(cfg.AllowedDomains, cfg.IndexPathPattern)
	if err != nil {
		return fmt.Errorf("invalid index path pattern: %w", err)
	}

	rep := model.NewCrawlReport(cfg.RunDate, cfg.Seeds)
	rep.OutputPath = outputPath

	client := &http.Client{Timeout: cfg.Timeout}
	spider := crawler.NewSpider(client, filter, sink, rep,
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithDelay(cfg.CrawlDelay),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithSourceDocument(cfg.SourceDocument),
		crawler.WithLogger(logger),
	)

	// A failed gate must not suppress persisting and summarizing the
	// run, so the pipeline keeps going and returns the first error.
	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		pipeline.NewCrawlStep(spider, sink, cfg.Seeds),
		pipeline.NewGateStep(quality.Thresholds{
			MinSubjects:  cfg.MinSubjects,
			MinInterests: cfg.MinInterests,
		}),
	)

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		p.AddSteps(pipeline.NewPersistStep(db, logger))
	}

	if cfg.SummaryPath != "" {
		summaryFile, err := os.Create(cfg.SummaryPath) //nolint:gosec // User-provided summary path is intentional
		if err != nil {
			return fmt.Errorf("failed to create summary file: %w", err)
		}
		defer summaryFile.Close()
		p.AddSteps(pipeline.NewSummaryStep(summaryFile))
	}

	start := time.Now()
	if err := p.Execute(ctx, rep); err != nil {
		return err
	}

	logger.Info("crawl finished",
		"subjects", rep.Subjects,
		"interests", rep.Interests,
		"pagesFetched", rep.PagesFetched,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	fmt.Printf("Wrote %d subjects and %d interests to %s\n",
		rep.Subjects, rep.Interests, outputPath)

	return nil
}
