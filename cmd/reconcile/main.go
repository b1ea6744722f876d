// One-shot reconciliation job: converge the local inventory table with the
// merchant's Shopify catalog and forward the result to the catalog sink.
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shopify-sync/internal/adapters/catalogsink"
	"shopify-sync/internal/adapters/shopify"
	"shopify-sync/internal/app/usecases"
	"shopify-sync/internal/classify"
	"shopify-sync/internal/config"
	infrahttp "shopify-sync/internal/infra/http"
	"shopify-sync/internal/infra/mysql"
	"shopify-sync/internal/logging"
	"shopify-sync/internal/metrics"
	"shopify-sync/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		return
	}
	logger := logging.NewLogger(cfg.TelegramBot)
	httpClient := infrahttp.NewClient(maxDuration(cfg.Shopify.Timeout, cfg.CatalogSink.Timeout))

	db, err := mysql.New(cfg.Mysql)
	if err != nil {
		logger.LogError("reconcile error", err)
		return
	}
	defer db.Close()

	productsStore := store.NewProducts(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := productsStore.EnsureSchema(ctx); err != nil {
		logger.LogError("reconcile error", err)
		return
	}

	if cfg.Sync.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(cfg.Sync.MetricsAddr, mux); err != nil {
				logger.LogWarning(fmt.Sprintf("metrics listener stopped: %v", err))
			}
		}()
	}

	shopifyClient := shopify.NewClient(cfg.Shopify, httpClient, logger)

	var sink catalogsink.SinkService
	if cfg.CatalogSink.BaseUrl != "" {
		sink = catalogsink.NewSinkService(cfg.CatalogSink, httpClient, logger)
	} else {
		logger.LogWarning("catalog sink base url missing, forwarding disabled")
	}

	reconcile := usecases.NewReconcile(
		productsStore,
		shopifyClient,
		shopifyClient,
		shopifyClient,
		classify.NewService(),
		sink,
		logger,
		cfg.Sync.PushDelay,
	)

	report, err := reconcile.Run(ctx, cfg.Sync.MerchantKey)
	if err != nil {
		logger.LogError("reconcile error", err)
		return
	}
	logger.Log(fmt.Sprintf("reconcile run finished run=%s", report.RunID))
}

func maxDuration(a, b time.Duration) time.Duration {
	if a >= b {
		return a
	}
	return b
}
