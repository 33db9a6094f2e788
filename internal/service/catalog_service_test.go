package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awadali7/pro-shopify-backend/internal/config"
	"github.com/awadali7/pro-shopify-backend/internal/domain"
	"github.com/awadali7/pro-shopify-backend/pkg/errors"
)

type upstreamStub struct {
	server *httptest.Server

	productsBody   string
	metafieldsBody string
	variantsByID   map[string]string

	variantCalls   int64
	metafieldCalls int64
}

func newUpstreamStub(t *testing.T) *upstreamStub {
	t.Helper()

	stub := &upstreamStub{variantsByID: map[string]string{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2024-10/collections/366257340597/products.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, stub.productsBody)
	})
	mux.HandleFunc("/admin/api/2024-10/collections/366257340597/metafields.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.metafieldCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, stub.metafieldsBody)
	})
	mux.HandleFunc("/admin/api/2024-10/products/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.variantCalls, 1)
		for id, body := range stub.variantsByID {
			if r.URL.Path == "/admin/api/2024-10/products/"+id+"/variants.json" {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, body)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errors":"Not Found"}`)
	})

	stub.server = httptest.NewServer(mux)
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *upstreamStub) shopifyConfig() config.ShopifyConfig {
	return config.ShopifyConfig{
		ShopDomain:  s.server.URL,
		AccessToken: "test-token",
		APIVersion:  "2024-10",
	}
}

func TestCollectionProducts_InterleavesMetafieldsAndProducts(t *testing.T) {
	stub := newUpstreamStub(t)
	stub.productsBody = `{"products":[
		{"id":1,"title":"Product One","product_type":"mug","admin_graphql_api_id":"gid://shopify/Product/1","image":{"src":"a.jpg"}},
		{"id":2,"title":"Product Two","product_type":"cup","admin_graphql_api_id":"gid://shopify/Product/2","image":null},
		{"id":3,"title":"Product Three","product_type":"pot","admin_graphql_api_id":"gid://shopify/Product/3","image":null}
	]}`
	stub.metafieldsBody = `{"metafields":[
		{"id":10,"key":"banner","value":"draw-banner","admin_graphql_api_id":"gid://shopify/Metafield/10"}
	]}`
	stub.variantsByID["1"] = `{"variants":[
		{"id":100,"title":"Default","price":"19.99","sku":"P1-D","admin_graphql_api_id":"gid://shopify/ProductVariant/100"},
		{"id":101,"title":"Large","price":"24.99","sku":"P1-L","admin_graphql_api_id":"gid://shopify/ProductVariant/101"}
	]}`
	stub.variantsByID["2"] = `{"variants":[
		{"id":200,"title":"Default","price":"9.99","sku":"P2-D","admin_graphql_api_id":"gid://shopify/ProductVariant/200"}
	]}`
	stub.variantsByID["3"] = `{"variants":[]}`

	svc := NewCatalogService(stub.shopifyConfig(), zap.NewNop())
	result, err := svc.CollectionProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Collection{ID: "366257340597", Name: "lucky-draw"}, result.Collection)
	require.Len(t, result.Data, 4)

	// metafield[0], product[0], then the product tail in original order
	mf, ok := result.Data[0].(domain.Metafield)
	require.True(t, ok, "data[0] should be a metafield")
	assert.Equal(t, int64(10), mf.ID)
	assert.Equal(t, "banner", mf.Title)

	p0, ok := result.Data[1].(domain.Product)
	require.True(t, ok, "data[1] should be a product")
	assert.Equal(t, int64(1), p0.ID)
	require.Len(t, p0.Variants, 2)
	assert.Equal(t, domain.Variant{
		ID:                100,
		Title:             "Default",
		Price:             "19.99",
		SKU:               "P1-D",
		AdminGraphQLAPIID: "gid://shopify/ProductVariant/100",
	}, p0.Variants[0])

	p1, ok := result.Data[2].(domain.Product)
	require.True(t, ok)
	assert.Equal(t, int64(2), p1.ID)
	require.Len(t, p1.Variants, 1)

	p2, ok := result.Data[3].(domain.Product)
	require.True(t, ok)
	assert.Equal(t, int64(3), p2.ID)
	assert.NotNil(t, p2.Variants)
	assert.Empty(t, p2.Variants)

	assert.EqualValues(t, 3, atomic.LoadInt64(&stub.variantCalls), "one variant fetch per product")
}

func TestCollectionProducts_EmptyCollectionAbortsPipeline(t *testing.T) {
	stub := newUpstreamStub(t)
	stub.productsBody = `{"products":[]}`

	svc := NewCatalogService(stub.shopifyConfig(), zap.NewNop())
	_, err := svc.CollectionProducts(context.Background())

	var emptyErr *errors.ErrEmptyCollection
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "366257340597", emptyErr.CollectionID)
	assert.Zero(t, atomic.LoadInt64(&stub.variantCalls), "no variant calls after empty product list")
	assert.Zero(t, atomic.LoadInt64(&stub.metafieldCalls), "no metafield call after empty product list")
}

func TestCollectionProducts_VariantFailureAbortsJoin(t *testing.T) {
	stub := newUpstreamStub(t)
	stub.productsBody = `{"products":[
		{"id":1,"title":"One","product_type":"","admin_graphql_api_id":"gid://shopify/Product/1","image":null},
		{"id":2,"title":"Two","product_type":"","admin_graphql_api_id":"gid://shopify/Product/2","image":null}
	]}`
	stub.variantsByID["1"] = `{"variants":[]}`
	// product 2 has no stub entry, so its variant fetch returns 404

	svc := NewCatalogService(stub.shopifyConfig(), zap.NewNop())
	_, err := svc.CollectionProducts(context.Background())

	var upstreamErr *errors.ErrUpstream
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
	assert.Zero(t, atomic.LoadInt64(&stub.metafieldCalls), "pipeline aborts before metafields")
}

func TestMergeCollectionData(t *testing.T) {
	mf := func(id int64) domain.Metafield {
		return domain.Metafield{ID: id, Title: fmt.Sprintf("m%d", id), Value: json.RawMessage(`"v"`)}
	}
	p := func(id int64) domain.Product {
		return domain.Product{ID: id, Title: fmt.Sprintf("p%d", id)}
	}

	tests := []struct {
		name       string
		metafields []domain.Metafield
		products   []domain.Product
		wantIDs    []int64
	}{
		{
			name:       "equal lengths alternate",
			metafields: []domain.Metafield{mf(1), mf(2)},
			products:   []domain.Product{p(10), p(20)},
			wantIDs:    []int64{1, 10, 2, 20},
		},
		{
			name:       "product tail preserved",
			metafields: []domain.Metafield{mf(1)},
			products:   []domain.Product{p(10), p(20), p(30)},
			wantIDs:    []int64{1, 10, 20, 30},
		},
		{
			name:       "metafield tail preserved",
			metafields: []domain.Metafield{mf(1), mf(2), mf(3)},
			products:   []domain.Product{p(10)},
			wantIDs:    []int64{1, 10, 2, 3},
		},
		{
			name:       "no metafields",
			metafields: nil,
			products:   []domain.Product{p(10), p(20)},
			wantIDs:    []int64{10, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := mergeCollectionData(tt.metafields, tt.products)
			require.Len(t, merged, len(tt.wantIDs))
			for i, entry := range merged {
				switch v := entry.(type) {
				case domain.Metafield:
					assert.Equal(t, tt.wantIDs[i], v.ID, "entry %d", i)
				case domain.Product:
					assert.Equal(t, tt.wantIDs[i], v.ID, "entry %d", i)
				default:
					t.Fatalf("unexpected entry type %T at %d", entry, i)
				}
			}
		})
	}
}
