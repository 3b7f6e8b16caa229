package mongo

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.CatalogResolver = (*CatalogResolver)(nil)

type productDocument struct {
	Variations []variationDocument `bson:"variations"`
}

// variationDocument accepts both dimension spellings found in the catalog.
// Dimensions is the current one; Dimension{l,w,h} is written by older tooling.
type variationDocument struct {
	ID         any                 `bson:"_id,omitempty"`
	SKU        string              `bson:"sku"`
	Weight     float64             `bson:"weight"`
	Dimensions *dimensionsDocument `bson:"dimensions,omitempty"`
	Dimension  *legacyDimension    `bson:"dimension,omitempty"`
	TaxCode    string              `bson:"taxCode,omitempty"`
}

type dimensionsDocument struct {
	Length float64 `bson:"length"`
	Width  float64 `bson:"width"`
	Height float64 `bson:"height"`
}

type legacyDimension struct {
	L float64 `bson:"l"`
	W float64 `bson:"w"`
	H float64 `bson:"h"`
}

// CatalogResolver reads product variations from the products collection.
type CatalogResolver struct {
	products *mongo.Collection
}

func NewCatalogResolver(db *mongo.Database) *CatalogResolver {
	return &CatalogResolver{products: db.Collection(ProductsCollection)}
}

// Variations loads the product by _id. Product ids may be stored as strings or
// as ObjectIDs, so a hex id matches either form.
func (r *CatalogResolver) Variations(ctx context.Context, productID string) ([]ports.CatalogVariation, error) {
	if productID == "" {
		return nil, errs.NewValueIsRequiredError("productID")
	}

	var product productDocument
	err := r.products.FindOne(ctx,
		bson.M{"_id": bson.M{"$in": productIDCandidates(productID)}},
		options.FindOne().SetProjection(bson.M{"variations": 1}),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NewObjectNotFoundError("productID", productID)
	}
	if err != nil {
		return nil, errs.NewExternalServiceError("catalog", err)
	}

	variations := make([]ports.CatalogVariation, 0, len(product.Variations))
	for _, v := range product.Variations {
		variations = append(variations, v.toPort())
	}
	return variations, nil
}

func productIDCandidates(productID string) []any {
	candidates := []any{productID}
	if oid, err := primitive.ObjectIDFromHex(productID); err == nil {
		candidates = append(candidates, oid)
	}
	return candidates
}

func (v variationDocument) toPort() ports.CatalogVariation {
	out := ports.CatalogVariation{
		VariationID: variationID(v.ID),
		SKU:         v.SKU,
		Weight:      v.Weight,
		TaxCode:     v.TaxCode,
	}

	switch {
	case v.Dimensions != nil:
		out.Length, out.Width, out.Height = v.Dimensions.Length, v.Dimensions.Width, v.Dimensions.Height
	case v.Dimension != nil:
		out.Length, out.Width, out.Height = v.Dimension.L, v.Dimension.W, v.Dimension.H
	}
	return out
}

func variationID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	default:
		return ""
	}
}
