package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/storefront-core/server/internal/model"
)

// SampleProducts is the catalog shipped with the storefront when no
// CATALOG_PATH is configured.
func SampleProducts() []model.Product {
	return []model.Product{
		{
			ID:          1,
			Name:        "Wireless Headphones",
			Price:       decimal.RequireFromString("199.99"),
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300&fit=crop",
			Description: "Premium wireless headphones with noise cancellation and 30-hour battery life.",
			Category:    "Audio",
			Rating:      4.8,
			InStock:     true,
		},
		{
			ID:          2,
			Name:        "Smartphone Pro",
			Price:       decimal.RequireFromString("899.99"),
			Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&h=300&fit=crop",
			Description: "Latest smartphone with advanced camera system and 5G connectivity.",
			Category:    "Phones",
			Rating:      4.9,
			InStock:     true,
		},
		{
			ID:          3,
			Name:        "Gaming Console",
			Price:       decimal.RequireFromString("499.99"),
			Image:       "https://images.unsplash.com/photo-1486401899868-0e435ed85128?w=400&h=300&fit=crop",
			Description: "Next-generation gaming console with 4K graphics and immersive gameplay.",
			Category:    "Gaming",
			Rating:      4.7,
			InStock:     false,
		},
		{
			ID:          4,
			Name:        "Bluetooth Speaker",
			Price:       decimal.RequireFromString("79.99"),
			Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=400&h=300&fit=crop",
			Description: "Portable Bluetooth speaker with 360-degree sound and waterproof design.",
			Category:    "Audio",
			Rating:      4.5,
			InStock:     true,
		},
		{
			ID:          5,
			Name:        "Wireless Mouse",
			Price:       decimal.RequireFromString("49.99"),
			Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=400&h=300&fit=crop",
			Description: "Ergonomic wireless mouse with precision tracking and long battery life.",
			Category:    "Accessories",
			Rating:      4.3,
			InStock:     true,
		},
		{
			ID:          6,
			Name:        "Laptop Stand",
			Price:       decimal.RequireFromString("59.99"),
			Image:       "https://images.unsplash.com/photo-1527142879-c2d18ba0451c?w=400&h=300&fit=crop",
			Description: "Adjustable aluminum laptop stand for better ergonomics and cooling.",
			Category:    "Accessories",
			Rating:      4.4,
			InStock:     false,
		},
	}
}

// Sample builds a Catalog from SampleProducts.
func Sample() *Catalog {
	c, err := New(SampleProducts())
	if err != nil {
		panic(err)
	}
	return c
}
