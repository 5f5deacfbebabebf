package maps

import (
	apphttp "photobooth_backend/internal/http"
	"photobooth_backend/platform/config"
	"photobooth_backend/platform/logger"
)

// Module wires the maps address lookup HTTP routes.
type Module struct {
	service *Service
	handler *Handler
}

func NewModule(cfg config.GeocoderConfig, log *logger.Logger, opts ...Option) *Module {
	svc := NewService(cfg, log, opts...)
	h := NewHandler(svc, log)
	return &Module{service: svc, handler: h}
}

// Service exposes the geocoder for the quote calculator.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/maps")
	group.GET("/address-lookup", m.handler.LookupAddress)
}

var _ apphttp.Module = (*Module)(nil)
