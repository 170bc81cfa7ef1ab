package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/cant-decide/cliparse"
	"github.com/danielhkuo/cant-decide/hub"
	"github.com/danielhkuo/cant-decide/router"
	"github.com/danielhkuo/cant-decide/session"
	"github.com/danielhkuo/cant-decide/store"
)

func main() {
	// Load .env if present (dev convenience; real env wins)
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the session store
	st, err := store.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("store open failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("session store ready", "type", cfg.DatabaseType)

	// Notification hub and session registry
	notifications := hub.New()
	reg := session.NewRegistry(session.Options{
		TTL:      cfg.SessionTTL,
		Store:    st,
		Notifier: notifications,
	})

	restored, err := reg.LoadFromStore()
	if err != nil {
		slog.Error("failed to restore sessions", "error", err)
		os.Exit(1)
	}
	slog.Info("sessions restored", "count", restored)

	reg.StartSweeper(cfg.SweepInterval)
	defer reg.Close()

	// Create router
	handler := router.NewRouter(reg, notifications)

	// Create server
	server := http.Server{
		Handler: handler,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
