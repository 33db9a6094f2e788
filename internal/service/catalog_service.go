package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/awadali7/pro-shopify-backend/internal/config"
	"github.com/awadali7/pro-shopify-backend/internal/domain"
	"github.com/awadali7/pro-shopify-backend/internal/shopify"
	"github.com/awadali7/pro-shopify-backend/pkg/errors"
)

type CatalogService struct {
	client *shopify.Client
	logger *zap.Logger
}

// NewCatalogService creates the service behind /api/collection-products
func NewCatalogService(cfg config.ShopifyConfig, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		client: shopify.NewClient(cfg, logger),
		logger: logger,
	}
}

// CollectionProducts aggregates the lucky-draw collection: products, their
// variants (fetched concurrently, one call per product) and the collection
// metafields, merged into a single interleaved list. The first failed call
// aborts the whole pipeline.
func (s *CatalogService) CollectionProducts(ctx context.Context) (*domain.CollectionProducts, error) {
	products, err := s.client.ListCollectionProducts(ctx, config.LuckyDrawCollectionID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, &errors.ErrEmptyCollection{CollectionID: config.LuckyDrawCollectionID}
	}

	// Fan out one variant fetch per product; g.Wait joins them and the group
	// context cancels outstanding fetches once any one fails
	variantsByProduct := make(map[int64][]shopify.Variant, len(products))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range products {
		p := p
		g.Go(func() error {
			variants, err := s.client.ListProductVariants(gctx, p.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			variantsByProduct[p.ID] = variants
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metafields, err := s.client.ListCollectionMetafields(ctx, config.LuckyDrawCollectionID)
	if err != nil {
		return nil, err
	}

	reshaped := make([]domain.Metafield, 0, len(metafields))
	for _, m := range metafields {
		reshaped = append(reshaped, domain.Metafield{
			ID:                m.ID,
			Title:             m.Key,
			Value:             m.Value,
			AdminGraphQLAPIID: m.AdminGraphQLAPIID,
		})
	}

	withVariants := make([]domain.Product, 0, len(products))
	for _, p := range products {
		variants := make([]domain.Variant, 0, len(variantsByProduct[p.ID]))
		for _, v := range variantsByProduct[p.ID] {
			variants = append(variants, domain.Variant{
				ID:                v.ID,
				Title:             v.Title,
				Price:             v.Price,
				SKU:               v.SKU,
				AdminGraphQLAPIID: v.AdminGraphQLAPIID,
			})
		}
		withVariants = append(withVariants, domain.Product{
			ID:                p.ID,
			Title:             p.Title,
			ProductType:       p.ProductType,
			AdminGraphQLAPIID: p.AdminGraphQLAPIID,
			Image:             p.Image,
			Variants:          variants,
		})
	}

	s.logger.Debug("Aggregated collection products",
		zap.Int("products", len(withVariants)),
		zap.Int("metafields", len(reshaped)),
	)

	return &domain.CollectionProducts{
		Collection: domain.Collection{
			ID:   config.LuckyDrawCollectionID,
			Name: config.LuckyDrawCollectionName,
		},
		Data: mergeCollectionData(reshaped, withVariants),
	}, nil
}

// mergeCollectionData interleaves metafields and products index-by-index
// (metafield[0], product[0], metafield[1], product[1], ...); when one side is
// exhausted the rest of the other is appended in original order.
func mergeCollectionData(metafields []domain.Metafield, products []domain.Product) []interface{} {
	merged := make([]interface{}, 0, len(metafields)+len(products))
	max := len(metafields)
	if len(products) > max {
		max = len(products)
	}
	for i := 0; i < max; i++ {
		if i < len(metafields) {
			merged = append(merged, metafields[i])
		}
		if i < len(products) {
			merged = append(merged, products[i])
		}
	}
	return merged
}
