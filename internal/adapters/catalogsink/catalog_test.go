package catalogsink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-sync/internal/adapters/catalogsink/dto"
	"shopify-sync/internal/config"
	"shopify-sync/internal/domain/model"
)

func TestForwardProductsPostsBulkPayload(t *testing.T) {
	var received dto.BulkRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/catalog/products/bulk", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(dto.BulkResponse{Status: "ok", Accepted: len(received.Products)})
	}))
	defer server.Close()

	sink := NewSinkService(config.CatalogSinkConfig{
		BaseUrl: server.URL,
		Token:   "secret",
		Timeout: 5 * time.Second,
	}, server.Client(), nil)

	records := []model.ProductRecord{
		{ExternalID: "1", Title: "Tee", Brand: "Nike", Size: "M", Condition: "used", Price: "10.00 USD", InventoryQuantity: 2},
		{ExternalID: "2", Title: "Hoodie", InventoryQuantity: 0},
	}
	require.NoError(t, sink.ForwardProducts(context.Background(), "m1", records))

	assert.Equal(t, "m1", received.MerchantKey)
	require.Len(t, received.Products, 2)
	assert.Equal(t, "1", received.Products[0].ExternalID)
	assert.Equal(t, "Nike", received.Products[0].Brand)
	assert.Equal(t, 0, received.Products[1].InventoryQuantity)
}

func TestForwardProductsNoRecordsIsNoop(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	sink := NewSinkService(config.CatalogSinkConfig{BaseUrl: server.URL}, server.Client(), nil)
	require.NoError(t, sink.ForwardProducts(context.Background(), "m1", nil))
	assert.Equal(t, 0, calls)
}

func TestForwardProductsSurfacesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer server.Close()

	sink := NewSinkService(config.CatalogSinkConfig{BaseUrl: server.URL}, server.Client(), nil)
	err := sink.ForwardProducts(context.Background(), "m1", []model.ProductRecord{{ExternalID: "1", Title: "Tee"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog sink request failed")
}

func TestNewSinkServiceDefaultsHTTPClient(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(dto.BulkResponse{Status: "ok", Accepted: 1})
	}))
	defer server.Close()

	sink := NewSinkService(config.CatalogSinkConfig{BaseUrl: server.URL, Timeout: 5 * time.Second}, nil, nil)
	require.NoError(t, sink.ForwardProducts(context.Background(), "m1", []model.ProductRecord{{ExternalID: "1"}}))
	assert.Equal(t, 1, calls)
}

func TestForwardProductsRequiresBaseUrl(t *testing.T) {
	sink := NewSinkService(config.CatalogSinkConfig{}, http.DefaultClient, nil)
	err := sink.ForwardProducts(context.Background(), "m1", []model.ProductRecord{{ExternalID: "1"}})
	require.Error(t, err)
}
