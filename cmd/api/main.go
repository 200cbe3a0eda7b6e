package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adlens/marketing-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/adlens/marketing-insights-api/internal/api"
	"github.com/adlens/marketing-insights-api/internal/api/handler"
	"github.com/adlens/marketing-insights-api/internal/config"
	"github.com/adlens/marketing-insights-api/internal/usecases/aggregating"
	"github.com/adlens/marketing-insights-api/internal/usecases/authenticating"
	"github.com/adlens/marketing-insights-api/pkg/cache"
	"github.com/adlens/marketing-insights-api/pkg/clock"
	"github.com/adlens/marketing-insights-api/pkg/ratelimit"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clk := clock.New()

	limiter := ratelimit.New(ratelimit.Config{
		Window:      cfg.RateLimit.Window,
		MaxRequests: cfg.RateLimit.MaxRequests,
		MinSpacing:  cfg.RateLimit.MinSpacing,
	}, clk)

	responseCache := cache.New(clk)

	metaClient := metaclient.NewClient(cfg, limiter, clk)

	aggregator := aggregating.NewService(cfg, metaClient, responseCache, clk)
	authenticator := authenticating.NewService(cfg, clk)

	authServices := handler.AuthServices{
		Config:        cfg,
		Client:        metaClient,
		Aggregator:    aggregator,
		Authenticator: authenticator,
		Cache:         responseCache,
		Clock:         clk,
	}

	server, err := api.New(cfg, aggregator, authenticator, authServices)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o servidor")
	}

	if err := server.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro na execução do servidor")
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
