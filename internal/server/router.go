package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/propilot/fbohub/pkg/logging"
)

// Handler returns the configured http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	if s.config.CORSEnabled {
		corsCfg := cors.DefaultConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsCfg.AllowOrigins = s.config.CORSOrigins
		} else {
			corsCfg.AllowAllOrigins = true
		}
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", s.handleHealth)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		facilities := v1.Group("/facilities")
		{
			facilities.GET("/:code", s.handleRecords)
			facilities.POST("", s.handleSubmitEdit)
			facilities.POST("/:code/sync", s.handleSync)
			facilities.POST("/:code/create", s.handleCreate)
			facilities.DELETE("/:code/:name", s.handleDelete)
		}
		v1.POST("/import", s.handleImport)
	}

	return router
}

// requestLogger tags each request with a short ID, threads a request-scoped
// logger through the request context, and logs one line per handled request.
// Manager calls made by the handlers inherit the ID in their log fields.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logging.WithRequestID(c.Request.Context(), uuid.NewString()[:8])
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		logging.Ctx(ctx).Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}
