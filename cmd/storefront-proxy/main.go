package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/efren-tilemart/judgeme-proxy/pkg/catalog"
	"github.com/efren-tilemart/judgeme-proxy/pkg/config"
	"github.com/efren-tilemart/judgeme-proxy/pkg/logging"
	"github.com/efren-tilemart/judgeme-proxy/pkg/pricing"
	"github.com/efren-tilemart/judgeme-proxy/pkg/reviews"
	"github.com/efren-tilemart/judgeme-proxy/pkg/upstream"
)

func main() {
	_ = godotenv.Load() // loads .env if present

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
		Output: os.Stderr,
	})

	reviewsClient := reviews.NewClient(reviews.ClientConfig{
		BaseURL:    cfg.Reviews.BaseURL,
		ShopDomain: cfg.Reviews.ShopDomain,
		APIToken:   cfg.Reviews.APIToken,
		PerPage:    cfg.Reviews.PerPage,
		Timeout:    cfg.Reviews.Timeout,
	})
	reviewsFetcher := reviews.NewFetcher(reviewsClient, reviews.FetcherConfig{
		PerPage:     cfg.Reviews.PerPage,
		MaxPages:    cfg.Reviews.MaxPages,
		PageTimeout: cfg.Reviews.Timeout,
	})
	reviewsService := reviews.NewService(reviewsFetcher, cfg.Reviews.CacheTTL)

	catalogClient := catalog.NewClient(catalog.ClientConfig{
		ShopDomain: cfg.Catalog.ShopDomain,
		BaseURL:    cfg.Catalog.BaseURL,
		APIToken:   cfg.Catalog.APIToken,
		APIVersion: cfg.Catalog.APIVersion,
		Timeout:    cfg.Catalog.Timeout,
	})
	resolver := catalog.NewResolver(catalogClient, catalog.ResolverConfig{
		ChunkSize:    cfg.Catalog.ChunkSize,
		ChunkTimeout: cfg.Catalog.Timeout,
	})
	pricingService := pricing.NewService(catalogClient)

	srv := &server{
		reviews:    reviewsService,
		resolver:   resolver,
		pricing:    pricingService,
		orders:     upstream.NewClient("orders", cfg.Catalog.Timeout),
		catalogCfg: cfg.Catalog,
		logger:     logging.NewLogger("http"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", srv.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/reviews", srv.handleReviews)
	mux.HandleFunc("POST /api/products/resolve", srv.handleResolve)
	mux.HandleFunc("GET /api/products/{handle}/price", srv.handlePrice)
	mux.HandleFunc("GET /api/orders/{id}", srv.handleOrder)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: requestLogger(mux, srv.logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Int("port", cfg.HTTP.Port).Msg("Starting storefront proxy")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown incomplete")
	}
}
