package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-seller-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-seller-dashboard/components/dashboard/fiberapi"
	"github.com/goliatone/go-seller-dashboard/components/dashboard/queries"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

type serveCmd struct {
	Addr string `help:"Listen address (overrides SELLERDASH_APP_ADDR)."`
}

func (cmd *serveCmd) Run(ctx context.Context, root *cli) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.App.Addr = cmd.Addr
	}
	log := newLogger(cfg, os.Stdout)
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	limiter := fiberapi.NewRefreshLimiter(cfg.Dashboard.RefreshRate, cfg.Dashboard.RefreshBurst)
	server := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	err = fiberapi.Register(server, fiberapi.Config{
		Sessions: a.service,
		Layout:   a.service.Layout(),
		Limiter:  limiter,
		Metrics:  promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}),
		Logger:   &log,
		Handlers: fiberapi.Handlers{
			Select:  commands.NewSelectSellerCommand(a.service, nil),
			Refresh: commands.NewRefreshPageCommand(a.service, nil),
			Render:  queries.NewRenderPageQuery(a.service, a.controller),
			State:   queries.NewPageViewQuery(a.service),
			Sellers: queries.NewSellersQuery(a.service),
		},
		SecureCookie: !cfg.App.IsDev(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.sweep(ctx, limiter)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.App.Addr).Msg("dashboard listening")
		errCh <- server.Listen(cfg.App.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// sweep closes idle sessions and forgets their refresh limiters.
func (a *app) sweep(ctx context.Context, limiter *fiberapi.RefreshLimiter) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	idle := a.cfg.Dashboard.SessionIdle
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			closed := a.service.SweepIdle(idle)
			pruned := limiter.Prune(idle)
			stats := a.charts.Stats()
			if closed > 0 || pruned > 0 {
				a.log.Debug().
					Int("sessions_closed", closed).
					Int("limiters_pruned", pruned).
					Int("sessions", a.service.SessionCount()).
					Int("chart_cache_entries", stats.Entries).
					Msg("idle sweep")
			}
		}
	}
}
