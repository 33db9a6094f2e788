package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/awadali7/pro-shopify-backend/internal/config"
	"github.com/awadali7/pro-shopify-backend/internal/shopify"
)

// Lists the lucky-draw collection products and their variants straight from
// Shopify, bypassing the proxy. Handy for checking credentials and collection
// contents.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Create Shopify client
	client := shopify.NewClient(cfg.Shopify, logger)
	ctx := context.Background()

	fmt.Printf("🔍 Fetching products in collection %s...\n", config.LuckyDrawCollectionID)

	products, err := client.ListCollectionProducts(ctx, config.LuckyDrawCollectionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch collection products: %v\n", err)
		os.Exit(1)
	}

	if len(products) == 0 {
		fmt.Println("Collection is empty")
		return
	}

	for _, p := range products {
		fmt.Printf("\n%d  %s (%s)\n", p.ID, p.Title, p.ProductType)

		variants, err := client.ListProductVariants(ctx, p.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  Failed to fetch variants: %v\n", err)
			continue
		}
		for _, v := range variants {
			fmt.Printf("  - %d  %s  sku=%s  price=%s\n", v.ID, v.Title, v.SKU, v.Price)
		}
	}

	fmt.Printf("\n✅ %d products\n", len(products))
}
