package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/nijaru/yt-blog/backend"
	"github.com/nijaru/yt-blog/config"
	"github.com/nijaru/yt-blog/middleware"
	"github.com/nijaru/yt-blog/models"
	"github.com/nijaru/yt-blog/presenter"
	"github.com/nijaru/yt-blog/utils"
	"github.com/sirupsen/logrus"
)

type Server struct {
	processor backend.Processor
	presenter *presenter.Presenter
	limiter   middleware.RateLimiter
	config    *config.Config
	logger    *logrus.Logger
	server    *http.Server
	startTime time.Time
}

type ServerOption func(*Server)

// NewServer wires the form pages to processor. The rate limiter guards
// POST /generate only.
func NewServer(cfg *config.Config, processor backend.Processor, opts ...ServerOption) *Server {
	s := &Server{
		processor: processor,
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.presenter == nil {
		s.presenter = presenter.New(presenter.WithTempDir(cfg.TempDir), presenter.WithLogger(s.logger))
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimitInterval, cfg.RateLimit,
			middleware.WithRejectHandler(http.HandlerFunc(s.handleRateLimited)))
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithPresenter(p *presenter.Presenter) ServerOption {
	return func(s *Server) {
		s.presenter = p
	}
}

// Handler returns the fully wrapped route tree.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.WithFields(logrus.Fields{
		"port":    s.config.ServerPort,
		"backend": s.config.BackendURL,
	}).Info("Starting server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("POST /generate", s.rateLimited(http.HandlerFunc(s.handleGenerate)))
	mux.HandleFunc("POST /download", s.handleDownload)
	mux.HandleFunc("GET /health", s.handleHealth)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Recovery(s.logger),
		middleware.Logging(s.logger),
	)
}

func (s *Server) rateLimited(h http.Handler) http.Handler {
	if s.limiter == nil {
		return h
	}
	return s.limiter.Middleware(h)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := models.HealthResponse{
		Status:  "ok",
		Version: s.config.Version,
		Uptime:  time.Since(s.startTime).String(),
	}

	if s.config.Debug {
		s.logger.WithField("goroutines", runtime.NumGoroutine()).Debug("Health check")
	}

	utils.RespondWithJSON(w, http.StatusOK, status)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	middleware.GetLogger(r.Context()).WithError(err).Error("Request error")
	utils.RespondWithError(w, err)
}
