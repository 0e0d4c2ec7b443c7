// Command server is the process entrypoint: it loads configuration, wires
// up the MessageBus registry, the realtime event stream, and the
// JSON-over-HTTP transport, then serves spec.md §6's API surface.
// Grounded on the teacher's cmd/server/main.go wiring shape and
// rdtc8822's cmd/l1jgo/main.go config-then-logger-then-serve sequencing.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/duskvale/dungeonengine/internal/bus"
	"github.com/duskvale/dungeonengine/internal/config"
	"github.com/duskvale/dungeonengine/internal/httpapi"
	"github.com/duskvale/dungeonengine/internal/realtime"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("DUNGEONENGINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	nextID := func() string { return uuid.NewString() }

	gameRegistry := bus.NewRegistry(sugar, nextID)
	streamRegistry := realtime.NewRegistry(func() *realtime.Broadcaster {
		return realtime.NewBroadcaster(sugar)
	})

	handler := httpapi.New(gameRegistry, streamRegistry, cfg, sugar, nextID)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	sugar.Infow("listening", "addr", cfg.Server.BindAddress)
	return http.ListenAndServe(cfg.Server.BindAddress, router)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
