package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for the optional YAML file. Durations are strings
// ("15s", "50ms") so they can go through time.ParseDuration.
type fileConfig struct {
	Shopify struct {
		ShopDomain string `yaml:"shop_domain"`
		Token      string `yaml:"token"`
		APIVer     string `yaml:"api_version"`
		Timeout    string `yaml:"timeout"`
	} `yaml:"shopify"`
	Mysql struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"mysql"`
	CatalogSink struct {
		BaseUrl string `yaml:"base_url"`
		Token   string `yaml:"token"`
		Timeout string `yaml:"timeout"`
	} `yaml:"catalog_sink"`
	TelegramBot struct {
		ChatId string `yaml:"chat_id"`
		Token  string `yaml:"token"`
	} `yaml:"telegram_bot"`
	Sync struct {
		MerchantKey string `yaml:"merchant_key"`
		PushDelay   string `yaml:"push_delay"`
		MetricsAddr string `yaml:"metrics_addr"`
	} `yaml:"sync"`
}

// applyFile overlays values from a YAML config file onto cfg. Only fields
// present in the file override the environment-derived values.
func applyFile(cfg *Config, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	defer file.Close()

	overlay := &fileConfig{}
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(overlay); err != nil {
		return fmt.Errorf("config file decode: %w", err)
	}

	mergeString(&cfg.Shopify.ShopDomain, overlay.Shopify.ShopDomain)
	mergeString(&cfg.Shopify.Token, overlay.Shopify.Token)
	mergeString(&cfg.Shopify.APIVer, overlay.Shopify.APIVer)
	if err := mergeDuration(&cfg.Shopify.Timeout, overlay.Shopify.Timeout, "shopify.timeout"); err != nil {
		return err
	}

	mergeString(&cfg.Mysql.Host, overlay.Mysql.Host)
	if overlay.Mysql.Port != 0 {
		cfg.Mysql.Port = overlay.Mysql.Port
	}
	mergeString(&cfg.Mysql.Username, overlay.Mysql.Username)
	mergeString(&cfg.Mysql.Password, overlay.Mysql.Password)
	mergeString(&cfg.Mysql.Database, overlay.Mysql.Database)

	mergeString(&cfg.CatalogSink.BaseUrl, overlay.CatalogSink.BaseUrl)
	mergeString(&cfg.CatalogSink.Token, overlay.CatalogSink.Token)
	if err := mergeDuration(&cfg.CatalogSink.Timeout, overlay.CatalogSink.Timeout, "catalog_sink.timeout"); err != nil {
		return err
	}

	mergeString(&cfg.TelegramBot.ChatId, overlay.TelegramBot.ChatId)
	mergeString(&cfg.TelegramBot.Token, overlay.TelegramBot.Token)

	mergeString(&cfg.Sync.MerchantKey, overlay.Sync.MerchantKey)
	if err := mergeDuration(&cfg.Sync.PushDelay, overlay.Sync.PushDelay, "sync.push_delay"); err != nil {
		return err
	}
	mergeString(&cfg.Sync.MetricsAddr, overlay.Sync.MetricsAddr)

	return nil
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeDuration(dst *time.Duration, src string, field string) error {
	if src == "" {
		return nil
	}
	d, err := time.ParseDuration(src)
	if err != nil {
		return fmt.Errorf("config file: invalid duration for %s: %w", field, err)
	}
	*dst = d
	return nil
}
