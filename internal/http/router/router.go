package router

import (
	"net/http"
	"time"

	apphttp "photobooth_backend/internal/http"
	"photobooth_backend/internal/http/middleware"
	"photobooth_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the gin engine and mounts every module under /api/v1.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	var reg prometheus.Registerer
	if r, ok := app.Metrics.(prometheus.Registerer); ok {
		reg = r
	}
	engine.Use(middleware.RequestTimer(reg))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if app.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Metrics, promhttp.HandlerOpts{})))
	}

	rc := &apphttp.RouterContext{
		Engine: engine,
		V1:     engine.Group("/api/v1"),
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(rc)
		app.Logger.Debug("module routes registered", "module", module.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	switch {
	case cfg.GetCORSAllowAll():
		c.AllowAllOrigins = true
	case len(cfg.GetCORSOrigins()) > 0:
		c.AllowOrigins = cfg.GetCORSOrigins()
	default:
		// cors rejects a config with no origin source at all.
		c.AllowOriginFunc = func(string) bool { return false }
	}
	return c
}
