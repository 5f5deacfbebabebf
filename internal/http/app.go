// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"photobooth_backend/platform/config"
	"photobooth_backend/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
