// Package mongotest starts a throwaway MongoDB for integration tests.
package mongotest

import (
	"context"

	mongo_adapter "fulfillment/internal/adapters/out/mongo"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// Start runs mongo:7 and connects to it. The caller disconnects the client and
// terminates the container.
func Start(ctx context.Context) (*mongodb.MongoDBContainer, *mongo.Client, error) {
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return nil, nil, err
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	client, err := mongo_adapter.Connect(ctx, uri)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	return container, client, nil
}
