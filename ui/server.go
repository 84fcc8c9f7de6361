// Package ui serves the JSON API over gin.
package ui

import (
	"context"
	"net/http"
	"sync"
	"time"

	"datasentry/app"
	"datasentry/internal"
	"datasentry/internal/dataset"
	"datasentry/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the DataSentry API
type Server struct {
	router    *gin.Engine
	processor *dataset.Processor
	service   *app.QualityService
	logger    *internal.Logger

	mu   sync.Mutex
	http *http.Server
}

// NewServer creates a new web server instance with all routes registered
func NewServer(processor *dataset.Processor, service *app.QualityService, logger *internal.Logger) *Server {
	s := &Server{
		router:    gin.New(),
		processor: processor,
		service:   service,
		logger:    logger.OrDefault(),
	}
	s.router.Use(gin.Recovery(), middleware.RequestLogger(s.logger))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/health", s.handleHealth)

	api.POST("/upload", s.handleUpload)
	api.GET("/files", s.handleListFiles)
	api.GET("/files/:id", s.handleFileInfo)
	api.DELETE("/files/:id", s.handleDeleteFile)

	api.POST("/analysis/:id", s.handleAnalyze)
	api.GET("/analysis/:id", s.handleGetAnalysis)
	api.GET("/summaries", s.handleSummaries)
	api.GET("/report/:id", s.handleReport)
	api.GET("/export/:id", s.handleExport)

	api.POST("/ai/insights/:id", s.handleInsights)
}

// Handler returns the full HTTP handler, gin wrapped in the request middleware
func (s *Server) Handler() http.Handler {
	return middleware.Wrap(s.router)
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	s.logger.Info("[API] Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
