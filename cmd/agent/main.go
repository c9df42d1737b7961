package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"HealthPulse/internal/cache"
	"HealthPulse/internal/config"
	"HealthPulse/internal/gateway"
	"HealthPulse/internal/notifier"
	"HealthPulse/internal/orchestrate"
	"HealthPulse/internal/recorder"
	"HealthPulse/internal/scheduler"
	"HealthPulse/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] HealthPulse starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init gateway
	gw := gateway.NewClient(cfg.Backend.BaseURL, cfg.Backend.Username, cfg.Proxy)
	log.Printf("[INFO] backend: %s (user %s)", cfg.Backend.BaseURL, cfg.Backend.Username)

	// Init request cache
	c := cache.New(gw.Get, cfg.DefaultTTL())

	// Init session state store
	store, err := session.NewStore(cfg.Session.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init session store: %v", err)
	}

	// Init loader and controller
	loader := orchestrate.NewLoader(c, store)
	ctrl := orchestrate.NewController(loader, c, store)

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		log.Println("[WARN] telegram not configured, alerts will only be logged")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, ctrl, gw, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] HealthPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] HealthPulse stopped")
}
