package handler

import (
	"errors"
	"io"
	"net/http"

	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/internal/quotes/live"
	"photobooth_backend/internal/quotes/service"
	"photobooth_backend/internal/quotes/transport"
	"photobooth_backend/platform/apperr"
	"photobooth_backend/platform/httpkit"
	"photobooth_backend/platform/logger"
	"photobooth_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session ID"
	msgSessionNotFound  = "live quote session not found"
)

// Handler handles HTTP requests for quotes
type Handler struct {
	calc      *service.Calculator
	submitter *service.Submitter
	sessions  *live.Manager
	val       *validator.Validator
	log       *logger.Logger
}

// New creates a new quotes handler
func New(calc *service.Calculator, submitter *service.Submitter, sessions *live.Manager, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{calc: calc, submitter: submitter, sessions: sessions, val: val, log: log}
}

// RegisterRoutes registers the quote routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/estimate", h.Estimate)
	rg.POST("/requests", h.Submit)
	rg.POST("/sessions", h.OpenSession)
	rg.PATCH("/sessions/:id", h.UpdateSession)
	rg.GET("/sessions/:id/events", h.SessionEvents)
	rg.DELETE("/sessions/:id", h.CloseSession)
}

// Pricing handles GET /api/v1/pricing
func (h *Handler) Pricing(c *gin.Context) {
	httpkit.OK(c, transport.NewPricingResponse(h.calc.Rates(), service.EventTypes))
}

// Estimate handles POST /api/v1/quotes/estimate
func (h *Handler) Estimate(c *gin.Context) {
	var req transport.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	input := req.ToInput()
	resp := transport.NewEstimateResponse(h.calc.Estimate(c.Request.Context(), input))
	resp.AddressError = addressError(input)
	httpkit.OK(c, resp)
}

// Submit handles POST /api/v1/quotes/requests.
// The breakdown is recomputed here; figures sent by the browser are ignored.
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, transport.SubmitQuoteResponse{Error: msgInvalidRequest})
		return
	}
	if err := h.val.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, transport.SubmitQuoteResponse{
			Error:   msgValidationFailed,
			Details: validator.FieldErrors(err),
		})
		return
	}

	ctx := c.Request.Context()
	quote := req.ToDomain()
	est := h.calc.Estimate(ctx, quote.EstimateInput())

	result := h.submitter.Submit(ctx, service.Submission{Request: quote, Estimate: &est})
	if !result.Success {
		if result.Err != nil {
			_ = c.Error(result.Err)
		}
		c.JSON(httpkit.StatusFor(result.Err), transport.SubmitQuoteResponse{Error: result.Error})
		return
	}

	breakdown := transport.NewBreakdownResponse(est.Breakdown)
	c.JSON(http.StatusOK, transport.SubmitQuoteResponse{Success: true, Quote: &breakdown})
}

// OpenSession handles POST /api/v1/quotes/sessions. The body is optional and
// carries the fields already filled in.
func (h *Handler) OpenSession(c *gin.Context) {
	var req transport.SessionFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	s := h.sessions.Create(initialInput(req))
	h.log.WithContext(c.Request.Context()).Debug("live quote session created", "sessionId", s.ID())

	c.JSON(http.StatusCreated, transport.SessionResponse{
		ID:         s.ID(),
		EventsURL:  c.Request.URL.Path + "/" + s.ID().String() + "/events",
		DebounceMs: h.sessions.Delay().Milliseconds(),
	})
}

// UpdateSession handles PATCH /api/v1/quotes/sessions/:id
func (h *Handler) UpdateSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req transport.SessionFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	gen, err := s.Apply(live.FieldUpdate{
		ServiceType:  req.ServiceType,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		VenueAddress: req.VenueAddress,
	})
	if errors.Is(err, live.ErrSessionClosed) {
		httpkit.HandleError(c, apperr.NotFound(msgSessionNotFound))
		return
	}

	httpkit.OK(c, transport.SessionUpdateResponse{Generation: gen})
}

// SessionEvents handles GET /api/v1/quotes/sessions/:id/events
func (h *Handler) SessionEvents(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Stream(c)
}

// CloseSession handles DELETE /api/v1/quotes/sessions/:id
func (h *Handler) CloseSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}
	if !h.sessions.Remove(id) {
		httpkit.HandleError(c, apperr.NotFound(msgSessionNotFound))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) session(c *gin.Context) (*live.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return nil, false
	}
	s, ok := h.sessions.Get(id)
	if !ok {
		httpkit.HandleError(c, apperr.NotFound(msgSessionNotFound))
		return nil, false
	}
	return s, true
}

func initialInput(req transport.SessionFieldsRequest) domain.EstimateInput {
	var in domain.EstimateInput
	if req.ServiceType != nil {
		in.ServiceType = domain.ServiceType(*req.ServiceType)
	}
	if req.StartTime != nil {
		in.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		in.EndTime = *req.EndTime
	}
	if req.VenueAddress != nil {
		in.VenueAddress = *req.VenueAddress
	}
	return in
}

// addressError flags a venue that was entered but does not look like a street address.
func addressError(in domain.EstimateInput) bool {
	return in.HasAddress() && !service.ValidVenueAddress(in.VenueAddress)
}
