package handler

import (
	"net/http"
	"sync"

	"promfeed/internal/api"
	"promfeed/internal/app"
	"promfeed/internal/config"

	"github.com/gin-gonic/gin"
)

var (
	initOnce sync.Once
	router   *gin.Engine
	initErr  error
)

// setup builds the router once per serverless instance.
func setup() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	cfg.Env = "production"

	logger := app.NewLogger(cfg)
	generator, err := app.NewGenerator(cfg, logger)
	if err != nil {
		logger.Error("Failed to build feed generator: %v", err)
		initErr = err
		return
	}

	router = api.New(cfg, logger, generator).Router()
}

// Handler is the serverless entrypoint. It serves the same routes as cmd/api.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)
	if initErr != nil {
		http.Error(w, "Service is not configured", http.StatusInternalServerError)
		return
	}
	router.ServeHTTP(w, r)
}
