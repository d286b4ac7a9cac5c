// Package api exposes the service as a single http.HandlerFunc for
// serverless platforms that own the listener.
package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/aether-dashboard/aether-api/internal/app"
	"github.com/aether-dashboard/aether-api/internal/pkg/config"
	"github.com/aether-dashboard/aether-api/pkg/logger"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

func setup() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		initErr = err
		return
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Service: "aether-api", Env: cfg.Env})
	if cfg.UsingFallbackSecret() {
		log.Warn().Msg("JWT_SECRET is not set; signing tokens with the built-in fallback secret")
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		initErr = err
		return
	}
	handler = a.Echo
}

// Handler builds the application on the first invocation and serves every
// request through it. Instances are reused across warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	if initErr != nil {
		log := logger.Get()
		log.Error().Err(initErr).Msg("startup failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"service unavailable"}`))
		return
	}
	handler.ServeHTTP(w, r)
}
