// sakand hosts the data core for a local UI: it opens the store, wires the
// sync outbox to the configured proxy, and keeps the retry queue draining
// until interrupted. UI collaborators embed the service packages directly;
// this binary exists for running the core standalone during development.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/sakanapp/sakan/internal/config"
	"github.com/sakanapp/sakan/internal/logging"
	"github.com/sakanapp/sakan/internal/notify"
	"github.com/sakanapp/sakan/internal/service"
	"github.com/sakanapp/sakan/internal/store"
	"github.com/sakanapp/sakan/internal/syncq"
)

func main() {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "failed to open store", "error", err.Error())
		os.Exit(1)
	}
	defer st.Close()

	remote := syncq.NewHTTPRemote(cfg.ProxyEndpoint, cfg.ProxyAPIKey, cfg.RequestTimeout)
	queue := syncq.NewSQLiteQueue(st.DB())
	outbox := syncq.NewOutbox(remote, queue, log)

	hub := notify.NewHub()
	building := service.New(st, outbox, hub, log)

	events, unsubscribe := hub.Subscribe(64)
	defer unsubscribe()
	go func() {
		for n := range events {
			log.Info(ctx, "notification", "kind", string(n.Kind), "message", n.Message)
		}
	}()

	go building.Run(ctx, cfg.DrainInterval)
	go watchOnline(ctx, remote, building, log, cfg)

	log.Info(ctx, "sakand started",
		"database", cfg.DatabasePath, "proxy", cfg.ProxyEndpoint)
	<-ctx.Done()
	log.Info(context.Background(), "sakand stopping")
}
