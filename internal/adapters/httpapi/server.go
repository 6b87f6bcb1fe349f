package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/core"
)

// Server exposes the analyzer over HTTP for browser frontends. All
// analysis endpoints are stateless; nothing is stored between calls.
type Server struct {
	service *core.AnalyzerService
	logger  *zap.Logger
	cfg     config.HTTPConfig
	httpSrv *http.Server
}

// NewServer creates a new HTTP analysis server.
func NewServer(service *core.AnalyzerService, logger *zap.Logger, cfg config.HTTPConfig) *Server {
	return &Server{
		service: service,
		logger:  logger,
		cfg:     cfg,
	}
}

// Routes builds the gin engine with all endpoints and middleware.
// Exposed separately from Start so tests can drive it with httptest.
func (s *Server) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), permissiveCORS(), requestMetrics())

	r.GET("/", s.handleRoot)
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Legacy single endpoint with content sniffing, kept for
	// backward compatibility with older frontends.
	r.POST("/analyze", s.handleAnalyzeAuto)

	// Explicit-mode endpoints.
	r.POST("/analyze/header", s.handleAnalyzeHeader)
	r.POST("/analyze/text", s.handleAnalyzeText)
	r.POST("/analyze/upload", s.handleAnalyzeUpload)

	return r
}

// Start starts the HTTP server in the background.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("HTTP server starting", zap.String("address", s.cfg.ListenAddress))

	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the HTTP server down, letting in-flight requests finish.
func (s *Server) Stop() error {
	if s.httpSrv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpSrv.Shutdown(ctx)
}
