package live

import (
	"time"

	"photobooth_backend/internal/quotes/service"
	"photobooth_backend/internal/quotes/transport"

	"github.com/gin-gonic/gin"
)

const (
	eventConnected = "connected"
	eventEstimate  = "estimate"
	eventClosed    = "closed"

	keepAliveInterval = 15 * time.Second
)

// Stream serves the session's estimates as Server-Sent Events until the
// client disconnects or the session closes.
func (s *Session) Stream(c *gin.Context) {
	events, cancel := s.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.SSEvent(eventConnected, gin.H{"sessionId": s.ID()})
	c.Writer.Flush()

	log := s.log.WithContext(s.ctx)
	log.Debug("live quote stream connected")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			log.Debug("live quote stream disconnected")
			return
		case <-keepAlive.C:
			_, _ = c.Writer.WriteString(": keep-alive\n\n")
			c.Writer.Flush()
		case up, ok := <-events:
			if !ok {
				c.SSEvent(eventClosed, gin.H{"sessionId": s.ID()})
				c.Writer.Flush()
				return
			}
			resp := transport.NewEstimateResponse(up.Estimate)
			resp.AddressError = up.Input.HasAddress() && !service.ValidVenueAddress(up.Input.VenueAddress)
			c.SSEvent(eventEstimate, transport.SessionEvent{Generation: up.Generation, Estimate: resp})
			c.Writer.Flush()
		}
	}
}
