package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AlexandrSher/danswer/internal/api"
	personaapi "github.com/AlexandrSher/danswer/internal/api/persona"
	"github.com/AlexandrSher/danswer/internal/config"
	"go.uber.org/zap"
)

// Build assembles the stub backend for the given environment.
func Build(environment string) (*App, error) {
	cfg, err := config.Load(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	store := personaapi.NewStore()
	personaHandler := personaapi.NewHandler(store)
	logger.Info("Persona store and handlers initialized")

	router := api.SetupRouter(personaHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// SetupLogger builds a production zap logger at the given level.
func SetupLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = atomicLevel

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}
