package main

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
	"github.com/goliatone/go-seller-dashboard/pkg/analytics"
	"github.com/goliatone/go-seller-dashboard/pkg/config"
	"github.com/goliatone/go-seller-dashboard/pkg/logger"
	"github.com/goliatone/go-seller-dashboard/pkg/metrics"
)

const serviceName = "sellerdash"

// app is the wired dashboard shared by every subcommand.
type app struct {
	cfg        *config.Config
	log        zerolog.Logger
	client     analytics.Client
	registry   *prometheus.Registry
	charts     *dashboard.ChartCache
	service    *dashboard.Service
	widgets    *dashboard.WidgetRenderer
	controller *dashboard.Controller
}

func loadConfig(root *cli) (*config.Config, error) {
	cfg, err := config.Load(root.EnvFile...)
	if err != nil {
		return nil, err
	}
	if root.Mock {
		cfg.API.Mock = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	return logger.New(logger.Options{
		Service: serviceName,
		Level:   logger.ParseLevel(cfg.App.LogLevel),
		Format:  cfg.App.LogFormat,
		Output:  out,
	})
}

func newClient(cfg *config.Config, log zerolog.Logger) (analytics.Client, error) {
	if cfg.API.Mock {
		log.Info().Msg("using demo analytics data")
		return analytics.NewMockClient(analytics.DemoData()), nil
	}
	return analytics.NewHTTPClient(analytics.HTTPConfig{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.APIKey,
		Timeout: cfg.API.Timeout,
		Logger:  &log,
	})
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	client, err := newClient(cfg, log)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	telemetry := dashboard.MultiTelemetry{
		logger.NewTelemetry(log),
		metrics.NewTelemetry(registry),
	}

	var layout *dashboard.Layout
	if path := cfg.Dashboard.LayoutPath; path != "" {
		if layout, err = dashboard.ReadLayout(path); err != nil {
			return nil, err
		}
	}

	service, err := dashboard.NewService(analytics.ServiceOptions(client, dashboard.Options{
		Layout:          layout,
		DefaultSellerID: cfg.Dashboard.DefaultSellerID,
		FetchTimeout:    cfg.Dashboard.FetchTimeout,
		SettleTimeout:   settleTimeout(cfg),
		MaxSessions:     cfg.Dashboard.MaxSessions,
		Logger:          &log,
		Telemetry:       telemetry,
	}))
	if err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	templates, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	cache := dashboard.NewChartCache(cfg.Dashboard.ChartCacheTTL)
	charts := dashboard.NewChartRenderer(
		dashboard.WithChartCache(cache),
		dashboard.WithChartTheme(cfg.Dashboard.ChartTheme),
		dashboard.WithChartAssetsHost(cfg.Dashboard.ChartAssetsHost),
	)
	widgets := dashboard.NewWidgetRenderer(templates, charts)
	controller := dashboard.NewController(templates, widgets, service.Layout())

	return &app{
		cfg:        cfg,
		log:        log,
		client:     client,
		registry:   registry,
		charts:     cache,
		service:    service,
		widgets:    widgets,
		controller: controller,
	}, nil
}

// settleTimeout maps a configured zero to "do not wait".
func settleTimeout(cfg *config.Config) time.Duration {
	if cfg.Dashboard.SettleTimeout == 0 {
		return -1
	}
	return cfg.Dashboard.SettleTimeout
}

func (a *app) Close() {
	a.service.Close()
}
