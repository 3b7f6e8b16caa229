package ports

import "context"

// CatalogVariation is a product variation's shipping data. Missing values are zero.
type CatalogVariation struct {
	VariationID string
	SKU         string
	Weight      float64
	Length      float64
	Width       float64
	Height      float64
	TaxCode     string
}

type CatalogResolver interface {
	// Variations returns all variations of productID. An unknown product
	// yields errs.ObjectNotFoundError.
	Variations(ctx context.Context, productID string) ([]CatalogVariation, error)
}
