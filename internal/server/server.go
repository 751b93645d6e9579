// Package server exposes the CV upload, job search and auto-apply operations
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amishk599/autoapply/internal/apply"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/search"
)

const shutdownTimeout = 30 * time.Second

// Searcher runs a job search for a query.
type Searcher interface {
	Search(ctx context.Context, query model.SearchQuery) (search.Result, error)
}

// Applier submits applications for a batch of jobs.
type Applier interface {
	Apply(ctx context.Context, jobs []model.JobPosting, cvContent string, profile model.Profile) (apply.Result, error)
}

// Options configures the HTTP listener.
type Options struct {
	Addr          string
	MaxUploadSize int64
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// Server is the HTTP front end of the agent.
type Server struct {
	httpServer    *http.Server
	engine        *gin.Engine
	searcher      Searcher
	applier       Applier
	maxUploadSize int64
	logger        *slog.Logger
}

// New creates a server with all routes registered.
func New(opts Options, searcher Searcher, applier Applier, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		searcher:      searcher,
		applier:       applier,
		maxUploadSize: opts.MaxUploadSize,
		logger:        logger,
	}

	r := gin.New()
	r.MaxMultipartMemory = opts.MaxUploadSize
	r.Use(s.recovery(), s.requestLogger(), cors())

	r.GET("/health", s.handleHealth)
	r.POST("/upload-cv", s.limitBody(), s.handleUploadCV)
	r.POST("/search-jobs", s.handleSearchJobs)
	r.POST("/auto-apply", s.handleAutoApply)

	s.engine = r
	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      r,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout, // covers a full paced apply batch
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// recovery turns a handler panic into a 500 JSON error.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		s.logger.Error("handler panic", "path", c.Request.URL.Path, "panic", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("Internal server error"))
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"remote", c.ClientIP(),
		)
	}
}

// limitBody rejects uploads larger than the configured maximum.
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.maxUploadSize <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > s.maxUploadSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorBody(msgTooLarge))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadSize)
		c.Next()
	}
}

// cors allows any origin; the browser client is served separately.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
