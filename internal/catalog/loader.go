package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/storefront-core/server/internal/model"
)

type fileProduct struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Price       string  `yaml:"price"`
	Image       string  `yaml:"image"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Rating      float64 `yaml:"rating"`
	InStock     bool    `yaml:"in_stock"`
}

type catalogFile struct {
	Products []fileProduct `yaml:"products"`
}

// Load reads a YAML catalog. Prices are kept as strings in the file so they
// reach decimal.Decimal without passing through float64.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	products := make([]model.Product, 0, len(f.Products))
	for _, fp := range f.Products {
		price, err := decimal.NewFromString(fp.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: price %q: %w", fp.ID, fp.Price, err)
		}
		products = append(products, model.Product{
			ID:          fp.ID,
			Name:        fp.Name,
			Price:       price,
			Image:       fp.Image,
			Description: fp.Description,
			Category:    fp.Category,
			Rating:      fp.Rating,
			InStock:     fp.InStock,
		})
	}
	return New(products)
}
