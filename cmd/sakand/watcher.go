package main

import (
	"context"
	"time"

	"github.com/sakanapp/sakan/internal/config"
	"github.com/sakanapp/sakan/internal/logging"
	"github.com/sakanapp/sakan/internal/service"
	"github.com/sakanapp/sakan/internal/syncq"
)

// watchOnline pings the proxy on an interval and, on an offline→online
// edge, signals the sync loop so pending operations drain immediately
// instead of waiting out the drain interval.
func watchOnline(ctx context.Context, remote *syncq.HTTPRemote, building *service.Building, log logging.Logger, cfg *config.Config) {
	if !remote.Configured() {
		return
	}

	ticker := time.NewTicker(cfg.OnlineCheckInterval)
	defer ticker.Stop()

	online := false
	for {
		select {
		case <-ticker.C:
			err := remote.Ping(ctx)
			if err != nil {
				if online {
					online = false
					log.Warn(ctx, "proxy unreachable, switching to offline mode")
				}
				continue
			}
			if !online {
				online = true
				log.Info(ctx, "proxy reachable, draining pending operations")
				building.NotifyOnline()
			}

		case <-ctx.Done():
			return
		}
	}
}
