package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockmail/internal/collector"
	"stockmail/internal/config"
	"stockmail/internal/dataset"
	"stockmail/internal/httpx"
	"stockmail/internal/logger"
	"stockmail/internal/notify"
	"stockmail/internal/notify/mail"
	"stockmail/internal/provider"
	"stockmail/internal/provider/ratelimit"
	"stockmail/internal/provider/realstonks"
	"stockmail/internal/store/csvfile"
	"stockmail/internal/store/sqlite"
)

func main() {
	var configPath string
	var dryRun bool

	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.yaml (optional)")
	flag.BoolVar(&dryRun, "dry-run", false, "log the email instead of sending it")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(os.Stderr, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, dryRun, log); err != nil {
		log.Error("run failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dryRun bool, log *slog.Logger) error {
	validate := cfg.Validate
	if dryRun {
		validate = cfg.ValidateDryRun
	}
	if err := validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	httpClient := httpx.New(time.Duration(cfg.Quotes.TimeoutSec) * time.Second)
	client := realstonks.NewClient(cfg.APIKey(),
		realstonks.WithBaseURL(cfg.Quotes.BaseURL),
		realstonks.WithHost(cfg.Quotes.Host),
		realstonks.WithHTTPClient(httpClient),
		realstonks.WithLogger(log),
	)
	var fetcher provider.Fetcher = &ratelimit.MinInterval{P: client, Interval: time.Duration(cfg.Quotes.DelayMs) * time.Millisecond}
	if cfg.Quotes.MaxPerMinute > 0 {
		fetcher = &ratelimit.Quota{P: fetcher, TB: ratelimit.PerMinute(cfg.Quotes.MaxPerMinute, cfg.Quotes.Burst)}
	}

	store := csvfile.New(cfg.Output.CSVPath)
	existing := dataset.Dataset{}
	if cfg.Output.Reload {
		prior, err := store.Load()
		if err != nil {
			return fmt.Errorf("reload %s: %w", cfg.Output.CSVPath, err)
		}
		existing = prior
		log.Debug("reloaded dataset", "path", cfg.Output.CSVPath, "rows", existing.Len())
	}

	var sender notify.Sender = notify.LogSender{Log: log}
	if !dryRun {
		sender = mail.New(mail.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Password: cfg.MailPassword(),
			From:     cfg.Sender(),
			To:       cfg.Receiver(),
		})
	}

	opts := []collector.Option{
		collector.WithLogger(log),
		collector.WithTailRows(cfg.Mail.TailRows),
	}
	if cfg.Store.SqlitePath != "" {
		archive, err := sqlite.Open(cfg.Store.SqlitePath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer archive.Close()
		opts = append(opts, collector.WithArchiver(archive))
	}

	c := collector.New(fetcher, store, notify.New(sender, cfg.Mail.Subject, log), opts...)
	_, err := c.Run(ctx, existing, cfg.SymbolList())
	return err
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
