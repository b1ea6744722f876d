package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"shopify-sync/internal/config"
)

type LoggerService interface {
	Log(value string)
	LogError(value string, err error)
	LogWarning(value string)
	LogSuccess(value string)
}

// Creds sends log lines to a Telegram chat and echoes them to stdout. When the
// bot credentials are missing the logger degrades to stdout only.
type Creds struct {
	Creds config.TelegramBotConfig
}

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	iconInfo    = "ℹ️"
	iconError   = "❌"
	iconWarning = "⚠️"
	iconSuccess = "✅"
)

func NewLogger(cfg config.TelegramBotConfig) LoggerService {
	if cfg.ChatId == "" || cfg.Token == "" {
		log.Println("[WARNING]: telegram credentials missing, logging to stdout only")
		return &Creds{}
	}
	return &Creds{Creds: cfg}
}

func (c *Creds) Log(value string) {
	if c == nil {
		return
	}
	c.emit(formatMessage(iconInfo, "INFO", value))
}

func (c *Creds) LogError(value string, err error) {
	if c == nil {
		return
	}
	if err != nil {
		value = fmt.Sprintf("%s: %v", value, err)
	}
	c.emit(formatMessage(iconError, "ERROR", value))
}

func (c *Creds) LogWarning(value string) {
	if c == nil {
		return
	}
	c.emit(formatMessage(iconWarning, "WARNING", value))
}

func (c *Creds) LogSuccess(value string) {
	if c == nil {
		return
	}
	c.emit(formatMessage(iconSuccess, "SUCCESS", value))
}

func formatMessage(icon, level, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return fmt.Sprintf("%s %s: %s", icon, level, v)
}

func (c *Creds) emit(value string) {
	log.Println(value)
	if c.Creds.ChatId == "" || c.Creds.Token == "" {
		return
	}
	if err := c.sendRequest(value); err != nil {
		log.Printf("telegram send failed: %v\n", err)
	}
}

func (c *Creds) sendRequest(value string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.Creds.Token)

	reqBody := telegramRequest{
		ChatId: c.Creds.ChatId,
		Text:   value,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: %s %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	return nil
}
