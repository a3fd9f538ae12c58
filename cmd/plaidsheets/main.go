package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/plaidsheets/plaidsheets"
	"github.com/plaidsheets/plaidsheets/internal/log"
	"github.com/plaidsheets/plaidsheets/notifier/telegram"
	"github.com/plaidsheets/plaidsheets/reader/plaid"
	jsonwriter "github.com/plaidsheets/plaidsheets/writer/json"
	"github.com/plaidsheets/plaidsheets/writer/sheets"
)

func setupLogging(logLevel, logFormat string) {
	programLevel, err := log.ParseLevel(logLevel)
	if err != nil {
		Exit(fmt.Sprintf("Error parsing log level: %s", err))
	}

	// Add source information for debug or lower
	addSource := programLevel <= slog.LevelDebug

	logger, err := log.New(programLevel, addSource, logFormat)
	if err != nil {
		Exit(fmt.Sprintf("Error creating logger: %s", err))
	}
	slog.SetDefault(logger)
}

func Exit(msg string) {
	fmt.Println(msg)
	os.Exit(1)
}

func main() {
	reset := flag.Bool("reset", false, "clear stored rows and re-import from scratch")
	flag.Parse()

	// Load .env file if present, then read config from env
	_ = godotenv.Load()
	var cfg plaidsheets.Config
	if err := envconfig.Process("", &cfg); err != nil {
		Exit(err.Error())
	}

	setupLogging(cfg.LogLevel, cfg.LogFormat)
	slog.Info("starting...", "version", versioninfo.Short())

	if len(cfg.Items) == 0 {
		Exit("No items configured, set PLAIDSHEETS_ITEMS")
	}

	ctx := context.Background()

	reader, err := plaid.NewReader(&cfg)
	if err != nil {
		Exit(fmt.Sprintf("Failed to create plaid reader: %v", err))
	}

	var storage plaidsheets.Storage
	switch cfg.Writer {
	case "sheets":
		writer, err := sheets.NewWriter(ctx, &cfg)
		if err != nil {
			Exit(fmt.Sprintf("Failed to create sheets writer: %v", err))
		}
		storage = writer
	case "json":
		storage = jsonwriter.Writer{}
	default:
		Exit(fmt.Sprintf("Unknown writer: %s", cfg.Writer))
	}

	var transform plaidsheets.Transform = plaidsheets.NopTransform
	if cfg.RulesFile != "" {
		rules, err := plaidsheets.LoadRules(cfg.RulesFile)
		if err != nil {
			Exit(fmt.Sprintf("Failed to load rules: %v", err))
		}
		transform = rules
	}

	var notifier plaidsheets.Notifier
	if cfg.Telegram.Token != "" {
		notifier = telegram.NewNotifier(&cfg)
	}

	importer := plaidsheets.NewImporter(&cfg, reader, storage, transform, notifier)

	if *reset {
		if err := importer.Reset(ctx); err != nil {
			Exit(fmt.Sprintf("Reset failed: %v", err))
		}
		return
	}

	for {
		if err := importer.Run(ctx); err != nil {
			slog.Error("run finished with failures", "error", err)
		}
		if cfg.Interval == 0 {
			break
		}
		slog.Info("waiting for next run", "in", cfg.Interval)
		time.Sleep(cfg.Interval)
	}
}
