package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Mdbasith05/Operations-dashboard/internal/config"
	"github.com/Mdbasith05/Operations-dashboard/internal/importer"
	"github.com/Mdbasith05/Operations-dashboard/internal/server"
	"github.com/Mdbasith05/Operations-dashboard/internal/util"
	"github.com/Mdbasith05/Operations-dashboard/internal/watcher"
)

var (
	port       = flag.Int("port", 0, "server port (overrides config.toml)")
	devMode    = flag.Bool("dev", false, "development mode")
	dataDir    = flag.String("dataDir", "", "data directory (overrides config.toml)")
	watchInbox = flag.Bool("watch", false, "auto-import files dropped into <dataDir>/inbox")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Operations Performance Dashboard")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	// flags override file values
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *watchInbox {
		cfg.Data.WatchInbox = true
	}

	setupLogging(cfg)

	resolvedDataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	fmt.Printf("data directory: %s\n", resolvedDataDir)

	srv := server.NewServer(cfg, resolvedDataDir)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("starting server on port %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Data.WatchInbox {
		inbox := filepath.Join(resolvedDataDir, "inbox")
		uploads := filepath.Join(resolvedDataDir, "uploads")
		coordinator := importer.NewCoordinator(srv.GetStore())
		w := watcher.New(inbox, uploads, coordinator, cfg.SLA.DefaultTarget)
		go func() {
			if err := w.Run(ctx); err != nil {
				logrus.WithError(err).Error("inbox watcher stopped")
			}
		}()
	}

	if !cfg.Server.DevMode {
		fmt.Printf("opening browser: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("could not open browser, visit %s manually\n", url)
		}
	} else {
		fmt.Printf("dev mode: visit %s\n", url)
	}

	fmt.Println("\npress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
	cancel()
	if err := srv.Close(); err != nil {
		log.Printf("close failed: %v", err)
	}
}

func setupLogging(cfg *config.AppConfig) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
