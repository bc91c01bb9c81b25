package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/cache"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Product is the catalog's view of a product, used to snapshot order-item
// prices at creation time
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// Client resolves products from the catalog service
type Client interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
}

// HTTPClient calls the product catalog over HTTP with a bounded timeout and
// caches successful lookups
type HTTPClient struct {
	baseURL  string
	client   *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewHTTPClient creates a new catalog client
func NewHTTPClient(baseURL string, timeout time.Duration, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// GetProduct resolves a product by ID. A timeout or 5xx is a dependency
// failure, never treated as "product exists".
func (c *HTTPClient) GetProduct(ctx context.Context, productID string) (*Product, error) {
	cacheKey := "catalog:product:" + productID

	if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
		var product Product
		if err := json.Unmarshal(cached, &product); err == nil {
			c.logger.Debug("Catalog cache hit", zap.String("product_id", productID))
			return &product, nil
		}
		// Corrupt entry, drop it and fall through to the catalog
		_ = c.cache.Delete(ctx, cacheKey)
	}

	url := fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if body, err := json.Marshal(product); err == nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL); err != nil {
			c.logger.Warn("Failed to cache product", zap.String("product_id", productID), zap.Error(err))
		}
	}

	return &product, nil
}
