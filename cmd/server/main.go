package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/todonaut/todonaut/internal/httpapi/server"
	"github.com/todonaut/todonaut/pkg/cache"
	"github.com/todonaut/todonaut/pkg/clients/dummyjson"
	"github.com/todonaut/todonaut/pkg/config"
	"github.com/todonaut/todonaut/pkg/logger"
	"github.com/todonaut/todonaut/pkg/store"
)

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Environment)

	upstream, err := dummyjson.NewClient(cfg.Upstream)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize upstream client")
	}

	backend, err := buildBackend(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize store backend")
	}

	dataStore := store.New(backend, upstream)

	apiServer := server.NewAPIServer(cfg, dataStore, upstream)
	if err := apiServer.Start(); err != nil {
		logrus.WithError(err).Fatal("api server exited")
	}
}

func buildBackend(ctx context.Context, cfg *config.AppConfig) (store.Backend, error) {
	switch cfg.Store.Backend {
	case "file", "":
		return store.NewFileBackend(cfg.Store.DataDir), nil
	case "cache":
		c, err := cache.New(ctx, cfg.Store.Cache)
		if err != nil {
			return nil, err
		}
		return store.NewCacheBackend(c), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}
