package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"canteen-orders/api"
	"canteen-orders/config"
	"canteen-orders/db"
	"canteen-orders/events"
	"canteen-orders/logging"
	"canteen-orders/metrics"
	"canteen-orders/notify"
	"canteen-orders/outbox"
	"canteen-orders/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := applyMigrations(ctx, pool, true); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
		return
	}

	// Optional auto-migration (useful for fresh DBs).
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(ctx, pool, false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	var notifier *notify.Notifier
	if cfg.Telegram.NotifyToken != "" && cfg.Telegram.NotifyChatID != 0 {
		notifier, err = notify.New(cfg.Telegram.NotifyToken, cfg.Telegram.NotifyChatID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "notify:", err)
			os.Exit(1)
		}
	}

	m := metrics.NewServerMetrics("api")
	server := api.NewServer(
		services.NewCatalogStore(pool),
		services.NewOrderStore(pool),
		services.NewUserStore(pool),
		services.NewTeamStore(pool),
		m,
		notifier,
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Log(logging.Fields{Service: "api", Status: "listening", Message: httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	kafkaClient := events.NewClient(cfg.Kafka.Brokers)
	if kafkaClient.Enabled() {
		relay := outbox.NewRelay(pool, kafkaClient.NewWriter(events.TopicOrders))
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}
