package domain

import "encoding/json"

// Product is the reshaped product returned to the storefront, with its
// variant list attached
type Product struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	ProductType       string          `json:"product_type"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
	Image             json.RawMessage `json:"image"`
	Variants          []Variant       `json:"variants"`
}

// Variant is the reshaped product variant (subset of the Shopify record)
type Variant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	AdminGraphQLAPIID string `json:"admin_graphql_api_id"`
}

// Metafield is the reshaped collection metafield. Title is sourced from the
// Shopify "key" field; Value is relayed as received.
type Metafield struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Value             json.RawMessage `json:"value"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
}

// Collection identifies the fixed collection served by the aggregator
type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CollectionProducts is the merged response for /api/collection-products.
// Data interleaves metafields and products index-by-index.
type CollectionProducts struct {
	Collection Collection    `json:"collection"`
	Data       []interface{} `json:"data"`
}
