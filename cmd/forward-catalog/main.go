// One-shot forwarding job: push the current local snapshot for a merchant to
// the catalog sink without touching Shopify.
package main

import (
	"context"
	"fmt"
	"time"

	"shopify-sync/internal/adapters/catalogsink"
	"shopify-sync/internal/config"
	infrahttp "shopify-sync/internal/infra/http"
	"shopify-sync/internal/infra/mysql"
	"shopify-sync/internal/logging"
	"shopify-sync/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		return
	}
	logger := logging.NewLogger(cfg.TelegramBot)

	if cfg.CatalogSink.BaseUrl == "" {
		logger.LogError("forward catalog error", fmt.Errorf("catalog sink base url is required"))
		return
	}

	db, err := mysql.New(cfg.Mysql)
	if err != nil {
		logger.LogError("forward catalog error", err)
		return
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	productsStore := store.NewProducts(db)
	records, err := productsStore.GetAll(ctx, cfg.Sync.MerchantKey)
	if err != nil {
		logger.LogError("forward catalog error", err)
		return
	}
	if len(records) == 0 {
		logger.LogWarning(fmt.Sprintf("forward catalog skipped: no local rows merchant=%s", cfg.Sync.MerchantKey))
		return
	}

	httpClient := infrahttp.NewClient(cfg.CatalogSink.Timeout)
	sink := catalogsink.NewSinkService(cfg.CatalogSink, httpClient, logger)
	if err := sink.ForwardProducts(ctx, cfg.Sync.MerchantKey, records); err != nil {
		logger.LogError("forward catalog error", err)
		return
	}

	logger.LogSuccess(fmt.Sprintf("forward catalog completed merchant=%s products=%d", cfg.Sync.MerchantKey, len(records)))
}
