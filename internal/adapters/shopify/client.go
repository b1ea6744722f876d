package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"shopify-sync/internal/adapters/shopify/dto"
	"shopify-sync/internal/config"
	"shopify-sync/internal/logging"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type Client struct {
	config     config.ShopifyConfig
	httpClient *http.Client
	logger     logging.LoggerService

	locationMu sync.Mutex
	locationID string
}

func NewClient(config config.ShopifyConfig, httpClient *http.Client, logger logging.LoggerService) *Client {
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) logWarning(value string) {
	if c.logger != nil {
		c.logger.LogWarning(value)
	}
}

func (c *Client) shopifyAPIRequest(ctx context.Context, method string, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.Token)

	client := c.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPStatusError(resp.StatusCode, resp.Status, respBody)
	}

	return respBody, nil
}

func (c *Client) graphqlRequest(ctx context.Context, query string, variables map[string]any, out any) error {
	domain := strings.TrimSpace(c.config.ShopDomain)
	if domain == "" {
		return errors.New("shopify shop domain is empty")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	domain = strings.TrimRight(domain, "/")
	if c.config.APIVer == "" {
		return errors.New("shopify api version is empty")
	}
	endpoint := domain + "/admin/api/" + c.config.APIVer + "/graphql.json"

	payload := graphQLRequest{
		Query:     strings.TrimSpace(query),
		Variables: variables,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	raw, err := c.shopifyAPIRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}

	var resp dto.GraphQLResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		return &graphqlErrorsError{errs: resp.Errors}
	}
	if out == nil {
		return nil
	}
	if len(resp.Data) == 0 {
		return errors.New("shopify graphql response missing data")
	}
	return json.Unmarshal(resp.Data, out)
}

// graphqlRequestWithRetry retries throttled or transient-status failures with
// exponential backoff. Only used for reads; writes stay zero-retry.
func (c *Client) graphqlRequestWithRetry(ctx context.Context, query string, variables map[string]any, out any) error {
	var lastErr error
	for attempt := 0; attempt < graphqlRetryMax; attempt++ {
		if attempt > 0 {
			if err := sleepWithContext(ctx, retryDelay(attempt-1)); err != nil {
				return err
			}
		}
		err := c.graphqlRequest(ctx, query, variables, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryableHTTPError(err) && !isThrottleGraphQLError(err) {
			return err
		}
		c.logWarning(fmt.Sprintf("shopify request throttled, retrying attempt=%d", attempt+1))
	}
	return lastErr
}

func formatGraphQLErrors(errs []dto.GraphQLError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}

func userErrorsToError(operation string, userErrors []dto.ShopifyUserError) error {
	if len(userErrors) == 0 {
		return nil
	}
	parts := make([]string, 0, len(userErrors))
	for _, ue := range userErrors {
		if len(ue.Field) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(ue.Field, "."), ue.Message))
		} else {
			parts = append(parts, ue.Message)
		}
	}
	return fmt.Errorf("shopify %s user errors: %s", operation, strings.Join(parts, "; "))
}

func productGid(externalID string) string {
	externalID = strings.TrimSpace(externalID)
	if strings.HasPrefix(externalID, "gid://") {
		return externalID
	}
	return "gid://shopify/Product/" + externalID
}

func (c *Client) primaryLocationID(ctx context.Context) (string, error) {
	if c == nil {
		return "", errors.New("shopify client is nil")
	}

	c.locationMu.Lock()
	if c.locationID != "" {
		locationID := c.locationID
		c.locationMu.Unlock()
		return locationID, nil
	}
	c.locationMu.Unlock()

	query := `
	query locations($first: Int!) {
		locations(first: $first) {
			nodes { id name isActive }
		}
	}`

	var data dto.LocationsQueryData
	if err := c.graphqlRequestWithRetry(ctx, query, map[string]any{"first": 50}, &data); err != nil {
		return "", err
	}
	locationID := ""
	for _, location := range data.Locations.Nodes {
		if location.ID == "" {
			continue
		}
		if location.IsActive {
			locationID = location.ID
			break
		}
	}
	if locationID == "" && len(data.Locations.Nodes) > 0 {
		locationID = data.Locations.Nodes[0].ID
	}
	if locationID == "" {
		return "", errors.New("shopify location not found")
	}

	c.locationMu.Lock()
	c.locationID = locationID
	c.locationMu.Unlock()
	return locationID, nil
}
