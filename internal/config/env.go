package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func requiredString(key string) (string, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	return variable, nil
}

func stringWithDefault(key, def string) string {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def
	}
	return variable
}

func intWithDefault(key string, def int) (int, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	number, err := strconv.Atoi(variable)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return number, nil
}

func durationWithDefault(key string, def time.Duration) (time.Duration, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	d, err := time.ParseDuration(variable)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

// Load builds the full config from environment variables. When CONFIG_FILE is
// set, values from the YAML file take precedence field by field.
func Load() (*Config, error) {
	shopDomain, err := requiredString("SHOPIFY_SHOP_DOMAIN")
	if err != nil {
		return nil, err
	}
	shopifyToken, err := requiredString("SHOPIFY_TOKEN")
	if err != nil {
		return nil, err
	}
	merchantKey, err := requiredString("SYNC_MERCHANT_KEY")
	if err != nil {
		return nil, err
	}

	shopifyTimeout, err := durationWithDefault("SHOPIFY_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	sinkTimeout, err := durationWithDefault("CATALOG_SINK_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	pushDelay, err := durationWithDefault("SYNC_PUSH_DELAY", 50*time.Millisecond)
	if err != nil {
		return nil, err
	}
	mysqlPort, err := intWithDefault("MYSQL_PORT", 3306)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Shopify: ShopifyConfig{
			ShopDomain: shopDomain,
			Token:      shopifyToken,
			APIVer:     stringWithDefault("SHOPIFY_API_VERSION", "2024-10"),
			Timeout:    shopifyTimeout,
		},
		Mysql: MysqlConfig{
			Host:     stringWithDefault("MYSQL_HOST", "localhost"),
			Port:     mysqlPort,
			Username: stringWithDefault("MYSQL_USERNAME", "root"),
			Password: os.Getenv("MYSQL_PASSWORD"),
			Database: stringWithDefault("MYSQL_DATABASE", "shopify_sync"),
		},
		CatalogSink: CatalogSinkConfig{
			BaseUrl: os.Getenv("CATALOG_SINK_BASE_URL"),
			Token:   os.Getenv("CATALOG_SINK_TOKEN"),
			Timeout: sinkTimeout,
		},
		TelegramBot: TelegramBotConfig{
			ChatId: os.Getenv("TELEGRAM_CHAT_ID"),
			Token:  os.Getenv("TELEGRAM_TOKEN"),
		},
		Sync: SyncConfig{
			MerchantKey: merchantKey,
			PushDelay:   pushDelay,
			MetricsAddr: os.Getenv("METRICS_ADDR"),
		},
	}

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		if err := applyFile(cfg, file); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
