package mongo_test

import (
	"context"
	"testing"
	"time"

	mongo_adapter "fulfillment/internal/adapters/out/mongo"
	"fulfillment/internal/adapters/out/mongo/mongotest"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type MongoAdaptersTestSuite struct {
	suite.Suite
	container *mongodb.MongoDBContainer
	client    *mongo.Client
	db        *mongo.Database
	catalog   *mongo_adapter.CatalogResolver
	mirror    *mongo_adapter.StatusMirror
}

func (suite *MongoAdaptersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, client, err := mongotest.Start(ctx)
	suite.Require().NoError(err)
	suite.container = container
	suite.client = client
	suite.db = client.Database("fulfillment_test")

	suite.Require().NoError(mongo_adapter.EnsureIndexes(ctx, suite.db))
	suite.catalog = mongo_adapter.NewCatalogResolver(suite.db)
	suite.mirror = mongo_adapter.NewStatusMirror(suite.db)
}

func (suite *MongoAdaptersTestSuite) TearDownSuite() {
	ctx := context.Background()
	if suite.client != nil {
		suite.Require().NoError(suite.client.Disconnect(ctx))
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(ctx))
	}
}

func (suite *MongoAdaptersTestSuite) SetupTest() {
	ctx := context.Background()
	_, err := suite.db.Collection(mongo_adapter.ProductsCollection).DeleteMany(ctx, bson.M{})
	suite.Require().NoError(err)
	_, err = suite.db.Collection(mongo_adapter.OrderStatusCollection).DeleteMany(ctx, bson.M{})
	suite.Require().NoError(err)
}

func (suite *MongoAdaptersTestSuite) TestVariations_BothDimensionSpellings() {
	ctx := context.Background()
	_, err := suite.db.Collection(mongo_adapter.ProductsCollection).InsertOne(ctx, bson.M{
		"_id":  "tee",
		"name": "Tee",
		"variations": bson.A{
			bson.M{
				"_id": "tee-m", "sku": "TEE-M", "weight": 0.25, "taxCode": "6109",
				"dimensions": bson.M{"length": 30, "width": 22, "height": 2},
				"dimension":  bson.M{"l": 99, "w": 99, "h": 99},
			},
			bson.M{
				"_id": "tee-l", "sku": "TEE-L", "weight": 0.3,
				"dimension": bson.M{"l": 32, "w": 24, "h": 3},
			},
			bson.M{"_id": "tee-xl", "sku": "TEE-XL"},
		},
	})
	suite.Require().NoError(err)

	got, err := suite.catalog.Variations(ctx, "tee")
	suite.Require().NoError(err)
	suite.Equal([]ports.CatalogVariation{
		{VariationID: "tee-m", SKU: "TEE-M", Weight: 0.25, Length: 30, Width: 22, Height: 2, TaxCode: "6109"},
		{VariationID: "tee-l", SKU: "TEE-L", Weight: 0.3, Length: 32, Width: 24, Height: 3},
		{VariationID: "tee-xl", SKU: "TEE-XL"},
	}, got)
}

func (suite *MongoAdaptersTestSuite) TestVariations_ObjectIDProduct() {
	ctx := context.Background()
	productID := primitive.NewObjectID()
	variationID := primitive.NewObjectID()
	_, err := suite.db.Collection(mongo_adapter.ProductsCollection).InsertOne(ctx, bson.M{
		"_id": productID,
		"variations": bson.A{
			bson.M{"_id": variationID, "sku": "MUG-1", "weight": 0.4,
				"dimensions": bson.M{"length": 12, "width": 12, "height": 10}},
		},
	})
	suite.Require().NoError(err)

	got, err := suite.catalog.Variations(ctx, productID.Hex())
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(variationID.Hex(), got[0].VariationID)
	suite.Equal(12.0, got[0].Length)
}

func (suite *MongoAdaptersTestSuite) TestVariations_UnknownProduct() {
	_, err := suite.catalog.Variations(context.Background(), "missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *MongoAdaptersTestSuite) TestMirror_UpsertsAndIgnoresStaleViews() {
	ctx := context.Background()
	view := ports.OrderStatusView{
		OrderID: "order-1", Phone: "+919800000001", Status: "shipped",
		Carrier: "realCarrier", AWB: "AWB1", TrackingURL: "https://track/AWB1", UpdatedAt: testNow,
	}
	suite.Require().NoError(suite.mirror.Mirror(ctx, view))

	delivered := view
	delivered.Status = "delivered"
	delivered.UpdatedAt = testNow.Add(time.Hour)
	suite.Require().NoError(suite.mirror.Mirror(ctx, delivered))

	stale := view
	stale.Status = "in_transit"
	stale.UpdatedAt = testNow.Add(30 * time.Minute)
	suite.Require().NoError(suite.mirror.Mirror(ctx, stale))

	got, err := suite.mirror.Get(ctx, "order-1")
	suite.Require().NoError(err)
	suite.Equal("delivered", got.Status)
	suite.Equal("AWB1", got.AWB)
	suite.True(got.UpdatedAt.Equal(delivered.UpdatedAt))

	count, err := suite.db.Collection(mongo_adapter.OrderStatusCollection).CountDocuments(ctx, bson.M{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *MongoAdaptersTestSuite) TestMirror_RequiresOrderID() {
	err := suite.mirror.Mirror(context.Background(), ports.OrderStatusView{Status: "shipped"})
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)

	_, err = suite.mirror.Get(context.Background(), "missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestMongoAdaptersTestSuite(t *testing.T) {
	suite.Run(t, new(MongoAdaptersTestSuite))
}
