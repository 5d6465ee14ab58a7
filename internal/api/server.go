package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"promfeed/internal/api/handlers"
	"promfeed/internal/api/middleware"
	"promfeed/internal/config"
	"promfeed/internal/logger"
	"promfeed/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, generator handlers.FeedGenerator) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(handlers.RunIDHeader))

	feedHandler := handlers.NewFeedHandler(generator, logger)

	router.GET("/feed.xml", feedHandler.Get)
	router.HEAD("/feed.xml", feedHandler.Get)
	router.GET("/healthz", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		// A full run walks the whole catalog under the upstream rate limit.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router exposes the gin engine for serverless entrypoints and tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
