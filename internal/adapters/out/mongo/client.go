// Package mongo holds the document-store adapters: the product catalog that
// dimension resolution reads and the customer-facing order status mirror.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProductsCollection    = "products"
	OrderStatusCollection = "order_status"

	connectTimeout = 30 * time.Second
	indexTimeout   = 5 * time.Second
)

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

// EnsureIndexes creates the indexes the adapters query by. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := db.Collection(ProductsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "variations.sku", Value: 1}},
		Options: options.Index().SetName("variations_sku_index"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(OrderStatusCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}, {Key: "updatedAt", Value: -1}},
		Options: options.Index().SetName("phone_updatedAt_index"),
	})
	return err
}
