package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shoprank/backend/internal/application/dashboard"
	"github.com/shoprank/backend/internal/infrastructure/config"
	"github.com/shoprank/backend/internal/infrastructure/ecommerce"
	"github.com/shoprank/backend/internal/infrastructure/logger"
	"github.com/shoprank/backend/internal/interfaces/console"
)

const requestTimeout = 60 * time.Second

func main() {
	// Configuration supplies defaults, flags override them
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var (
		serverURL string
		platform  string
		category  string
		sort      string
		query     string
		export      bool
		exportDir   string
		interactive bool
		logLevel  string
	)

	flag.StringVar(&serverURL, "server", cfg.Dashboard.ServerURL, "Ranking API base URL")
	flag.StringVar(&platform, "platform", cfg.Dashboard.Platform, "Platform: coupang or naver")
	flag.StringVar(&category, "category", cfg.Dashboard.Category, "Category key (all, fashion, beauty, food, digital, ...)")
	flag.StringVar(&sort, "sort", cfg.Dashboard.Sort, "Search sort order: sim, date, asc, dsc (naver only)")
	flag.StringVar(&query, "query", "", "Search text (naver only)")
	flag.BoolVar(&export, "export", false, "Save the loaded listings as CSV")
	flag.StringVar(&exportDir, "export-dir", cfg.Dashboard.ExportDir, "Directory CSV exports are written to")
	flag.BoolVar(&interactive, "i", false, "Keep running and read commands from stdin")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stderr",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	retryHint := console.RetryHint
	if interactive {
		retryHint = console.InteractiveRetryHint
	}

	fetcher := dashboard.NewHTTPFetcher(serverURL, ecommerce.NewHTTPClient(requestTimeout))
	view := console.NewView(os.Stdout,
		console.WithExportDir(exportDir),
		console.WithRetryHint(retryHint),
		console.WithLogger(log),
	)
	controller := dashboard.NewController(fetcher, view,
		dashboard.WithLogger(log),
		dashboard.WithSelection(dashboard.Selection{
			Platform: platform,
			Category: category,
			Sort:     sort,
			Query:    query,
		}),
	)

	log.Debug("Dashboard starting",
		zap.String("server", serverURL),
		zap.String("platform", platform),
		zap.String("category", category),
	)

	loadErr := controller.Load(ctx)
	if loadErr != nil {
		log.Debug("Load failed", zap.Error(loadErr))
	}

	if interactive {
		session := console.NewSession(controller, os.Stdout, log)
		if err := session.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
			log.Error("Session ended", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if loadErr != nil {
		os.Exit(1)
	}
	if export {
		if err := controller.Export(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
