package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photobooth_backend/internal/email"
	apphttp "photobooth_backend/internal/http"
	"photobooth_backend/internal/http/router"
	"photobooth_backend/internal/maps"
	"photobooth_backend/internal/quotes"
	"photobooth_backend/internal/quotes/service"
	"photobooth_backend/platform/config"
	"photobooth_backend/platform/logger"
	"photobooth_backend/platform/metrics"
	"photobooth_backend/platform/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	sender, err := email.NewSender(cfg, log)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	log.Info("email sender initialized", "provider", cfg.GetEmailProvider())

	if cfg.GetQuoteRecipientEmail() == "" {
		log.Warn("QUOTE_RECIPIENT_EMAIL not configured; quote requests will be rejected")
	}

	rates, err := service.LoadRates(cfg.GetPricingFile())
	if err != nil {
		log.Error("failed to load pricing", "error", err, "file", cfg.GetPricingFile())
		panic("failed to load pricing: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	mapsModule := maps.NewModule(cfg, log)
	log.Info("geocoder initialized", "provider", mapsModule.Service().Provider())

	quotesModule, err := quotes.NewModule(quotes.Deps{
		Rates:    rates,
		Geocoder: mapsModule.Service(),
		Sender:   sender,
		Submitter: service.SubmitterConfig{
			Recipient:    cfg.GetQuoteRecipientEmail(),
			BookingURL:   cfg.GetBookingURL(),
			BusinessName: cfg.GetEmailFromName(),
		},
		Debounce:       cfg.GetQuoteDebounce(),
		SessionIdleTTL: cfg.GetSessionIdleTTL(),
		Metrics:        quoteMetrics,
		Validator:      val,
		Logger:         log,
	})
	if err != nil {
		log.Error("failed to initialize quotes module", "error", err)
		panic("failed to initialize quotes module: " + err.Error())
	}

	sessions := quotesModule.Sessions()
	go sessions.Run(ctx)
	defer sessions.Close()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Metrics: registry,
		Modules: []apphttp.Module{
			mapsModule,
			quotesModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		// Live streams only end when their sessions close.
		sessions.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
