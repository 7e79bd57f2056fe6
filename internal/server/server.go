// Package server assembles the HTTP surface: catalog reads, the two form
// relays, health and metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mundolaboral-api/internal/catalog"
	"mundolaboral-api/internal/common/config"
	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/common/mail"
	"mundolaboral-api/internal/common/observability"
	"mundolaboral-api/internal/relay/apply"
	"mundolaboral-api/internal/relay/registration"
)

// Dependencies carries everything the server needs. All fields are required.
type Dependencies struct {
	Config  *config.Config
	Logger  logger.Logger
	Catalog *catalog.Catalog
	Mailer  mail.Mailer
	Metrics *observability.Observability
}

// Server owns the gin engine and the listener lifecycle.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	cfg    *config.Config
	logger logger.Logger
}

// New wires routes and middleware. The engine is fully configured on
// return; Run only binds the listener.
func New(deps Dependencies) *Server {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestTelemetry(deps.Logger, deps.Metrics))

	corsConfig := cors.DefaultConfig()
	if len(deps.Config.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = deps.Config.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		engine: engine,
		cfg:    deps.Config,
		logger: deps.Logger,
	}
	s.registerRoutes(deps)

	s.http = &http.Server{
		Addr:    deps.Config.Server.Addr(),
		Handler: engine,
	}
	return s
}

func (s *Server) registerRoutes(deps Dependencies) {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	catalogHandler := newCatalogHandler(deps.Catalog)
	handoffHandler := newHandoffHandler()

	api := s.engine.Group("/api")
	{
		api.GET("/jobs", catalogHandler.listJobs)
		api.GET("/jobs/:id", catalogHandler.getJob)
		api.GET("/visas", catalogHandler.listVisas)
		api.GET("/visas/:id", catalogHandler.getVisa)
		api.GET("/register/session", handoffHandler.getSession)

		relayDeps := apply.ServiceDependencies{Logger: deps.Logger, Mailer: deps.Mailer}
		applyHandler := apply.NewHandler(relayDeps, apply.NewConfig(deps.Config), deps.Metrics)
		api.POST("/send-email", applyHandler.Handle)

		regDeps := registration.ServiceDependencies{Logger: deps.Logger, Mailer: deps.Mailer}
		regHandler := registration.NewHandler(regDeps, registration.NewConfig(deps.Config), deps.Metrics)
		api.POST("/complete-registration", regHandler.Handle)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.cfg.App.Name,
		"version": s.cfg.App.Version,
	})
}

// Engine exposes the router for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is cancelled, then drains within the configured
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", map[string]interface{}{
			"addr": s.http.Addr,
		})
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := time.Duration(s.cfg.Server.ShutdownTimeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("HTTP server draining", nil)
	return s.http.Shutdown(shutdownCtx)
}

// requestTelemetry logs each request and records its duration under the
// route template, not the raw path, to keep metric cardinality bounded.
func requestTelemetry(log logger.Logger, metrics *observability.Observability) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(start)
		metrics.RecordRequestDuration(c.Request.Context(), route, duration, c.Writer.Status())

		log.Info("request", map[string]interface{}{
			"method":   c.Request.Method,
			"route":    route,
			"status":   c.Writer.Status(),
			"duration": duration.String(),
		})
	}
}
