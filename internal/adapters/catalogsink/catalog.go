package catalogsink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopify-sync/internal/adapters/catalogsink/dto"
	"shopify-sync/internal/config"
	"shopify-sync/internal/domain/model"
	"shopify-sync/internal/logging"
)

// SinkService forwards normalized catalog data to the secondary backend.
// Best-effort: callers log failures and move on.
type SinkService interface {
	ForwardProducts(ctx context.Context, merchantKey string, records []model.ProductRecord) error
}

type SinkClient struct {
	config     config.CatalogSinkConfig
	httpClient *http.Client
	logger     logging.LoggerService
}

const productsEndpoint = "/v1/catalog/products/bulk"

func NewSinkService(cfg config.CatalogSinkConfig, httpClient *http.Client, logger logging.LoggerService) SinkService {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &SinkClient{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *SinkClient) ForwardProducts(ctx context.Context, merchantKey string, records []model.ProductRecord) error {
	if strings.TrimSpace(c.config.BaseUrl) == "" {
		return errors.New("catalog sink base url is empty")
	}
	if len(records) == 0 {
		return nil
	}

	payload := dto.BulkRequest{
		MerchantKey: merchantKey,
		Products:    make([]dto.Product, 0, len(records)),
	}
	for _, record := range records {
		payload.Products = append(payload.Products, dto.Product{
			ExternalID:        record.ExternalID,
			Title:             record.Title,
			Description:       record.Description,
			ImageURL:          record.ImageURL,
			Condition:         record.Condition,
			Brand:             record.Brand,
			Size:              record.Size,
			Price:             record.Price,
			InventoryQuantity: record.InventoryQuantity,
		})
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	url := strings.TrimRight(c.config.BaseUrl, "/") + productsEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog sink request failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var result dto.BulkResponse
	if err := json.Unmarshal(respBody, &result); err == nil && c.logger != nil {
		c.logger.Log(fmt.Sprintf("catalog sink accepted merchant=%s products=%d", merchantKey, result.Accepted))
	}
	return nil
}
