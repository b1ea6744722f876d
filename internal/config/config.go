package config

import "time"

type Config struct {
	Shopify     ShopifyConfig
	Mysql       MysqlConfig
	CatalogSink CatalogSinkConfig
	TelegramBot TelegramBotConfig
	Sync        SyncConfig
}

type ShopifyConfig struct {
	ShopDomain string
	Token      string
	APIVer     string
	Timeout    time.Duration
}

type MysqlConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

type CatalogSinkConfig struct {
	BaseUrl string
	Token   string
	Timeout time.Duration
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}

type SyncConfig struct {
	MerchantKey string
	PushDelay   time.Duration
	MetricsAddr string
}
