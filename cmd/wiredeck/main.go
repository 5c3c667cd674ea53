package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"wiredeck/internal/database"
	"wiredeck/internal/history"
	"wiredeck/internal/server"
	"wiredeck/internal/settings"
	"wiredeck/internal/store"
	"wiredeck/internal/wgctl"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8090", "listen address")
	configDir := flag.String("config-dir", "", "WireGuard config directory (defaults to settings, then the platform convention)")
	dataDir := flag.String("data-dir", defaultDataDir(), "directory for settings and status history")
	poll := flag.Duration("poll", 5*time.Second, "status history poll interval")
	flag.Parse()

	settingsManager := settings.NewManager(filepath.Join(*dataDir, "settings.json"))
	stored, err := settingsManager.Get()
	if err != nil {
		log.Printf("warning: failed to load settings: %v", err)
	}

	dir := *configDir
	if dir == "" {
		dir = stored.ConfigDir
	}
	if dir == "" {
		dir = store.DefaultDir()
	}
	configStore := store.New(dir)
	client := wgctl.NewClient()

	interval := *poll
	if stored.PollIntervalSeconds > 0 {
		interval = time.Duration(stored.PollIntervalSeconds) * time.Second
	}
	retention := 7 * 24 * time.Hour
	if stored.HistoryRetentionDays > 0 {
		retention = time.Duration(stored.HistoryRetentionDays) * 24 * time.Hour
	}

	var recorder *history.Recorder
	db, err := database.Open(filepath.Join(*dataDir, "history.db"))
	if err != nil {
		log.Printf("warning: status history disabled: %v", err)
	} else {
		defer db.Close()
		if err := database.Cleanup(db, retention); err != nil {
			log.Printf("warning: history cleanup failed: %v", err)
		}
		recorder = history.NewRecorder(db, configStore, client, interval)
	}

	srv := server.New(configStore, client, recorder, settingsManager)

	stop := make(chan struct{})
	if recorder != nil {
		go recorder.Start(stop)
	}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("wiredeck listening on %s (configs in %s)", *addr, dir)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	<-sigCh
	log.Println("shutting down...")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func defaultDataDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "wiredeck")
	}
	return filepath.Join(os.TempDir(), "wiredeck")
}
