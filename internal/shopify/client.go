package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/awadali7/pro-shopify-backend/internal/config"
	"github.com/awadali7/pro-shopify-backend/pkg/errors"
)

type Client struct {
	baseURL     string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Shopify admin REST client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	// Normalize shop domain - default to https unless a scheme is given
	baseURL := strings.TrimSuffix(cfg.ShopDomain, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return &Client{
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Product is the upstream product record (subset used by the proxy)
type Product struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	ProductType       string          `json:"product_type"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
	Image             json.RawMessage `json:"image"`
}

// Variant is the upstream product variant record (subset used by the proxy)
type Variant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	AdminGraphQLAPIID string `json:"admin_graphql_api_id"`
}

// Metafield is the upstream collection metafield record
type Metafield struct {
	ID                int64           `json:"id"`
	Key               string          `json:"key"`
	Value             json.RawMessage `json:"value"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
}

// CreateCustomer creates a customer with marketing consent enabled and
// returns the created record as Shopify sent it
func (c *Client) CreateCustomer(ctx context.Context, email string) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"customer": map[string]interface{}{
			"email":             email,
			"accepts_marketing": true,
		},
	}

	body, err := c.do(ctx, http.MethodPost, "customers.json", payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Customer json.RawMessage `json:"customer"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer response: %w", err)
	}
	return result.Customer, nil
}

// ListCollectionProducts fetches the products belonging to a collection
func (c *Client) ListCollectionProducts(ctx context.Context, collectionID string) ([]Product, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("collections/%s/products.json", collectionID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products response: %w", err)
	}
	return result.Products, nil
}

// ListProductVariants fetches the variants of a single product
func (c *Client) ListProductVariants(ctx context.Context, productID int64) ([]Variant, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("products/%d/variants.json", productID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Variants []Variant `json:"variants"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal variants response: %w", err)
	}
	return result.Variants, nil
}

// ListCollectionMetafields fetches the metafields attached to a collection
func (c *Client) ListCollectionMetafields(ctx context.Context, collectionID string) ([]Metafield, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("collections/%s/metafields.json", collectionID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Metafields []Metafield `json:"metafields"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metafields response: %w", err)
	}
	return result.Metafields, nil
}

// ListPriceRules fetches all price rules and returns the response body verbatim
func (c *Client) ListPriceRules(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "price_rules.json", nil)
}

// do issues one admin API request and classifies failures: errors before the
// request is dispatched become ErrRequestSetup, transport failures become
// ErrUnreachable, and non-2xx responses become ErrUpstream carrying the
// original status and body.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	url := fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, path)

	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, &errors.ErrRequestSetup{Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, &errors.ErrRequestSetup{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shopify request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &errors.ErrUnreachable{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrUnreachable{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Shopify returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &errors.ErrUpstream{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
