package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"lfmeet/internal/config"
	appLog "lfmeet/internal/log"
	"lfmeet/internal/schema"
	"lfmeet/internal/source"
	"lfmeet/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	listen     string
	logLevel   string
	once       bool
	debug      bool
}

func main() {
	appLog.Info("lfmeet starting", "version", "0.1.0-dev")

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override config file values when provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.logLevel != "" {
		conf.LogLevel = flags.logLevel
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"refresh", conf.RefreshCron,
		"early_join_minutes", conf.EarlyJoinMinutes,
		"source_count", len(conf.Sources),
		"once", flags.once,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	// Choose cache dir: prod vs debug.
	cacheDir := "/var/lib/lfmeet/source-cache"
	if flags.debug {
		cacheDir = "./cache/source-cache"
	}

	fetcher := source.NewFetcher(cacheDir)
	server := web.NewServer(conf)

	refresh := func() {
		sources := make([]source.Source, 0, len(conf.Sources))
		for _, sc := range conf.Sources {
			if sc.URL == "" {
				continue
			}
			id := sc.ID
			if id == "" {
				if sc.Name != "" {
					id = sc.Name
				} else {
					id = sc.URL
				}
			}
			sources = append(sources, source.Source{ID: id, URL: sc.URL})
		}

		results, errs := fetcher.FetchAll(ctx, sources)
		if len(errs) > 0 {
			appLog.Error("one or more source fetches failed", errs[0], "error_count", len(errs))
		}

		records := make([]schema.Record, 0)
		for _, res := range results {
			records = append(records, res.Records...)
		}
		server.SetRecords(records)
	}

	// Initial refresh so the API is populated before the first cron tick.
	refresh()

	if flags.once {
		appLog.Info("single refresh completed, exiting")
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(conf.RefreshCron, refresh); err != nil {
		appLog.Error("invalid refresh cron expression", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	httpServer := &http.Server{
		Addr:    conf.Listen,
		Handler: server.Handler(),
	}

	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Error("HTTP server failed", err)
			cancel()
		}
	}()

	<-ctx.Done()

	if err := httpServer.Shutdown(context.Background()); err != nil {
		appLog.Error("HTTP server shutdown failed", err)
	}
	appLog.Info("lfmeet exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/lfmeet/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.logLevel, "log-level", "", "Log level: debug, info, error (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Run one refresh cycle and exit")
	flag.BoolVar(&cfg.debug, "debug", false, "Use local cache directories")

	flag.Parse()

	return cfg
}
