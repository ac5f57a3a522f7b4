package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamebrowser/internal/browser"
	"gamebrowser/internal/config"
	"gamebrowser/internal/content"
	"gamebrowser/internal/hostlist"
	"gamebrowser/internal/httpapi"
	"gamebrowser/internal/logger"
	"gamebrowser/internal/probe"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server browser daemon",
	Long:  `Starts the browser loop, the UDP prober and the HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		registry := content.NewRegistry()
		names := content.NewNameStore()
		if cfg.Content.Dir != "" {
			n, err := registry.ScanDir(cfg.Content.Dir)
			if err != nil {
				logg.Warn("content scan failed", zap.String("dir", cfg.Content.Dir), zap.Error(err))
			} else {
				logg.Info("indexed local content", zap.Int("packs", n))
			}
		}

		hosts := hostlist.New(cfg.Browser.HostListPath, logg)
		prober := probe.New(cfg.Probe, logg)

		br := browser.New(browser.Config{DefaultPort: cfg.Browser.DefaultPort}, browser.Collaborators{
			Querier: prober,
			Content: registry,
			Names:   names,
			RebuildHostList: func(manual []string) {
				if err := hosts.Rebuild(manual); err != nil {
					logg.Warn("host list rebuild failed", zap.Error(err))
				}
			},
		}, logg)
		prober.Attach(br)

		saved, err := hosts.Load()
		if err != nil {
			logg.Warn("host list load failed", zap.Error(err))
		}
		for _, address := range saved {
			if _, err := br.AddServer(address); err != nil {
				logg.Warn("skipping saved server", zap.String("address", address), zap.Error(err))
			}
		}

		srv := &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: httpapi.NewMux(br),
		}
		go func() {
			logg.Info("serving API", zap.String("port", cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logg.Fatal("API server failed", zap.Error(err))
			}
		}()

		// The loop below owns the browser: every Tick, content rescan and
		// shutdown runs here.
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

		ticker := time.NewTicker(cfg.Browser.TickInterval)
		defer ticker.Stop()

		logg.Info("browser loop running",
			zap.Duration("tick", cfg.Browser.TickInterval),
			zap.Int("saved_servers", len(saved)))

		for {
			select {
			case <-ticker.C:
				br.Tick()
			case sig := <-sigc:
				if sig == syscall.SIGHUP {
					rescan(cfg, registry, br, logg)
					continue
				}
				logg.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				_ = srv.Shutdown(ctx)
				cancel()
				return
			}
		}
	},
}

// rescan refreshes the local content registry and re-resolves every tracked
// server's compatibility.
func rescan(cfg *config.Config, registry *content.Registry, br *browser.Browser, logg *zap.Logger) {
	if cfg.Content.Dir == "" {
		return
	}
	n, err := registry.ScanDir(cfg.Content.Dir)
	if err != nil {
		logg.Warn("content rescan failed", zap.Error(err))
		return
	}
	logg.Info("content rescan complete", zap.Int("packs", n))
	br.OnLocalContentChanged()
}

func init() {
	rootCmd.AddCommand(startCmd)
}
