// Operator tool: delete every local inventory row for one merchant. Remote
// state is never touched; a following reconcile run repopulates the table.
package main

import (
	"context"
	"fmt"
	"time"

	"shopify-sync/internal/config"
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

	db, err := mysql.New(cfg.Mysql)
	if err != nil {
		logger.LogError("wipe local error", err)
		return
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	productsStore := store.NewProducts(db)
	deleted, err := productsStore.DeleteAll(ctx, cfg.Sync.MerchantKey)
	if err != nil {
		logger.LogError("wipe local error", err)
		return
	}

	logger.LogSuccess(fmt.Sprintf("wipe local completed merchant=%s deleted=%d", cfg.Sync.MerchantKey, deleted))
}
