package maps

import (
	"net/http"

	"photobooth_backend/platform/httpkit"
	"photobooth_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler exposes the maps search endpoint.
type Handler struct {
	svc *Service
	log *logger.Logger
}

func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// LookupAddress handles GET /api/v1/maps/address-lookup?q=...
func (h *Handler) LookupAddress(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	results, err := h.svc.SearchAddress(c.Request.Context(), req.Query)
	if err != nil {
		h.log.WithContext(c.Request.Context()).ExternalCallFailed("nominatim", "search", err)
		httpkit.Error(c, http.StatusBadGateway, "address lookup service unavailable", nil)
		return
	}

	httpkit.OK(c, results)
}
