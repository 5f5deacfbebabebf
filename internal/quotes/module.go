// Package quotes provides the quote estimate and quote request module.
package quotes

import (
	"time"

	"photobooth_backend/internal/email"
	apphttp "photobooth_backend/internal/http"
	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/internal/quotes/handler"
	"photobooth_backend/internal/quotes/live"
	"photobooth_backend/internal/quotes/service"
	"photobooth_backend/platform/logger"
	"photobooth_backend/platform/metrics"
	"photobooth_backend/platform/validator"
)

// Deps holds everything the module needs from the composition root.
type Deps struct {
	Rates     domain.Rates
	Geocoder  service.Geocoder
	Sender    email.Sender
	Submitter service.SubmitterConfig
	// Debounce delays live recalculation after time and address edits.
	Debounce       time.Duration
	SessionIdleTTL time.Duration
	Metrics        *metrics.QuoteMetrics
	Validator      *validator.Validator
	Logger         *logger.Logger
}

// Module represents the quotes domain module
type Module struct {
	handler  *handler.Handler
	calc     *service.Calculator
	sessions *live.Manager
}

// NewModule creates a new quotes module with all dependencies wired.
// The quote form validation rules are registered on deps.Validator.
func NewModule(deps Deps) (*Module, error) {
	if err := service.RegisterValidations(deps.Validator); err != nil {
		return nil, err
	}

	calc := service.NewCalculator(deps.Rates, deps.Geocoder, deps.Metrics, deps.Logger)
	submitter := service.NewSubmitter(deps.Sender, deps.Submitter, deps.Metrics, deps.Logger)
	sessions := live.NewManager(calc, deps.Debounce, deps.SessionIdleTTL, deps.Logger)

	return &Module{
		handler:  handler.New(calc, submitter, sessions, deps.Validator, deps.Logger),
		calc:     calc,
		sessions: sessions,
	}, nil
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "quotes"
}

// Calculator returns the estimate calculator.
func (m *Module) Calculator() *service.Calculator {
	return m.calc
}

// Sessions returns the live session manager so the caller can run and stop its reaper.
func (m *Module) Sessions() *live.Manager {
	return m.sessions
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/pricing", m.handler.Pricing)
	m.handler.RegisterRoutes(ctx.V1.Group("/quotes"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
