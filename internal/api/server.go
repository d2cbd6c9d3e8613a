// Package api exposes the control plane over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	serverconfig "github.com/trovehq/prowler/internal/config/server"
	"github.com/trovehq/prowler/internal/logger"
)

// Server wires the HTTP control plane: watchlist management, manual
// triggers, monitoring control and activity inspection.
type Server struct {
	httpServer *http.Server
	logger     logger.Interface
}

// NewServer builds the HTTP server around the given handler set.
func NewServer(cfg *serverconfig.Config, handler *Handler, log logger.Interface) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	router.GET("/healthz", handler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/watchlist", handler.ListWatchlist)
		v1.POST("/watchlist", handler.AddInfluencer)
		v1.DELETE("/watchlist/:platform/:handle", handler.RemoveInfluencer)

		v1.POST("/process", handler.TriggerProcess)
		v1.GET("/tasks/:id", handler.GetTask)

		v1.GET("/products", handler.ListProducts)
		v1.DELETE("/products/:id", handler.DeleteProduct)

		v1.GET("/logs", handler.ListLogs)

		v1.GET("/monitoring", handler.MonitoringStatus)
		v1.POST("/monitoring/start", handler.StartMonitoring)
		v1.POST("/monitoring/stop", handler.StopMonitoring)
		v1.PUT("/monitoring/interval", handler.SetInterval)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: log.WithComponent("api"),
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request with latency and status.
func requestLogger(log logger.Interface) gin.HandlerFunc {
	accessLog := log.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		accessLog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
