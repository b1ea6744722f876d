package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "example.myshopify.com")
	t.Setenv("SHOPIFY_TOKEN", "shpat_test")
	t.Setenv("SYNC_MERCHANT_KEY", "merchant-1")
	t.Setenv("CONFIG_FILE", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "example.myshopify.com", cfg.Shopify.ShopDomain)
	assert.Equal(t, "2024-10", cfg.Shopify.APIVer)
	assert.Equal(t, 15*time.Second, cfg.Shopify.Timeout)
	assert.Equal(t, 3306, cfg.Mysql.Port)
	assert.Equal(t, "merchant-1", cfg.Sync.MerchantKey)
	assert.Equal(t, 50*time.Millisecond, cfg.Sync.PushDelay)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SYNC_MERCHANT_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYNC_MERCHANT_KEY")
}

func TestLoadInvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHOPIFY_TIMEOUT", "banana")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHOPIFY_TIMEOUT", "30s")
	t.Setenv("SYNC_PUSH_DELAY", "200ms")
	t.Setenv("MYSQL_PORT", "3307")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Shopify.Timeout)
	assert.Equal(t, 200*time.Millisecond, cfg.Sync.PushDelay)
	assert.Equal(t, 3307, cfg.Mysql.Port)
}

func TestLoadYamlFileTakesPrecedence(t *testing.T) {
	setRequiredEnv(t)

	file := filepath.Join(t.TempDir(), "config.yaml")
	body := `
shopify:
  shop_domain: override.myshopify.com
  timeout: 20s
mysql:
  port: 3310
sync:
  push_delay: 80ms
`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
	t.Setenv("CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "override.myshopify.com", cfg.Shopify.ShopDomain)
	assert.Equal(t, 20*time.Second, cfg.Shopify.Timeout)
	assert.Equal(t, 3310, cfg.Mysql.Port)
	assert.Equal(t, 80*time.Millisecond, cfg.Sync.PushDelay)
	// Untouched fields keep their environment values.
	assert.Equal(t, "shpat_test", cfg.Shopify.Token)
	assert.Equal(t, "merchant-1", cfg.Sync.MerchantKey)
}

func TestLoadMissingYamlFileFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	_, err := Load()
	require.Error(t, err)
}
