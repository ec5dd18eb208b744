package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/flowreader/pkg/config"
	"github.com/umputun/flowreader/pkg/content"
	"github.com/umputun/flowreader/pkg/feed"
	"github.com/umputun/flowreader/pkg/fetcher"
	"github.com/umputun/flowreader/pkg/llm"
	"github.com/umputun/flowreader/pkg/pipeline"
	"github.com/umputun/flowreader/pkg/repository"
	"github.com/umputun/flowreader/pkg/scheduler"
	"github.com/umputun/flowreader/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"path to yaml config file, defaults only when empty"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB" description:"database dsn, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)
	log.Printf("[INFO] starting flowreader version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is done or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	if cfg.LLM.APIKey != "" {
		SetupLog(opts.Debug, cfg.LLM.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	httpFetcher := fetcher.New(fetcher.Config{
		Timeout:     cfg.Fetch.Timeout,
		UserAgent:   cfg.Fetch.UserAgent,
		MaxBodySize: cfg.Fetch.MaxBodySize,
	})

	orchestrator, err := makeOrchestrator(cfg, repos, httpFetcher)
	if err != nil {
		return err
	}

	sched := scheduler.NewScheduler(scheduler.Params{
		FeedManager:     repos.Feed,
		ArticleManager:  repos.Article,
		Fetcher:         httpFetcher,
		Parser:          feed.NewParser(),
		UpdateInterval:  cfg.Schedule.UpdateInterval,
		CleanupInterval: cfg.Schedule.CleanupInterval,
		Retention:       cfg.Schedule.Retention,
		MaxWorkers:      cfg.Schedule.MaxWorkers,
	})
	sched.Start(ctx)
	defer sched.Stop()

	params := server.Params{
		Config:       cfg,
		Database:     server.NewRepositoryAdapter(repos),
		Scheduler:    sched,
		Orchestrator: orchestrator,
		Version:      revision,
		Debug:        opts.Debug,
	}
	if cfg.LLM.Enabled() {
		log.Printf("[INFO] summaries enabled with model %s", cfg.LLM.Model)
		params.Summarizer = llm.NewSummarizer(cfg.LLM)
	}

	if err := server.New(params).Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeOrchestrator builds the extraction tiers from rule tables and the configured reader engine
func makeOrchestrator(cfg *config.Config, repos *repository.Repositories, pageFetcher pipeline.PageFetcher) (*pipeline.Orchestrator, error) {
	rules, err := content.LoadRules(cfg.Extraction.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load extraction rules: %w", err)
	}
	reader, err := content.NewReaderMode(cfg.Extraction.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to make reader: %w", err)
	}
	log.Printf("[DEBUG] extraction rules v%d, reader %s", rules.Version, cfg.Extraction.Reader)

	return pipeline.New(pipeline.Deps{
		Store:     repos.Article,
		Fetcher:   pageFetcher,
		Reader:    reader,
		Extractor: content.NewExtractor(rules),
		Stripper:  content.NewStripper(rules),
		Cleaner:   content.NewCleaner(rules),
	}, pipeline.Config{
		ReaderMinBytes: rules.Thresholds.ReaderMinBytes,
		Timeout:        cfg.Extraction.Timeout,
	}), nil
}

// SetupLog configures lgr and routes the std logger through it, secrets are masked in output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
