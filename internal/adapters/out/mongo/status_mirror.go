package mongo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.StatusMirror = (*StatusMirror)(nil)

type orderStatusDocument struct {
	OrderID     string    `bson:"_id"`
	Phone       string    `bson:"phone"`
	Status      string    `bson:"status"`
	Carrier     string    `bson:"carrier,omitempty"`
	AWB         string    `bson:"awb,omitempty"`
	TrackingURL string    `bson:"trackingUrl,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// StatusMirror keeps one document per order in order_status for the
// storefront to read.
type StatusMirror struct {
	statuses *mongo.Collection
}

func NewStatusMirror(db *mongo.Database) *StatusMirror {
	return &StatusMirror{statuses: db.Collection(OrderStatusCollection)}
}

// Mirror upserts the view. A view older than the stored one is ignored: the
// filter then misses, the upsert collides on _id and the duplicate key error
// is swallowed.
func (m *StatusMirror) Mirror(ctx context.Context, view ports.OrderStatusView) error {
	if view.OrderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	doc := orderStatusDocument{
		OrderID:     view.OrderID,
		Phone:       view.Phone,
		Status:      view.Status,
		Carrier:     view.Carrier,
		AWB:         view.AWB,
		TrackingURL: view.TrackingURL,
		UpdatedAt:   view.UpdatedAt.UTC().Truncate(time.Millisecond),
	}

	filter := bson.M{
		"_id":       doc.OrderID,
		"updatedAt": bson.M{"$lte": doc.UpdatedAt},
	}

	_, err := m.statuses.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return errs.NewExternalServiceError("status mirror", err)
	}
	return nil
}

// Get returns the mirrored view of an order.
func (m *StatusMirror) Get(ctx context.Context, orderID string) (ports.OrderStatusView, error) {
	var doc orderStatusDocument
	err := m.statuses.FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ports.OrderStatusView{}, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return ports.OrderStatusView{}, errs.NewExternalServiceError("status mirror", err)
	}

	return ports.OrderStatusView{
		OrderID:     doc.OrderID,
		Phone:       doc.Phone,
		Status:      doc.Status,
		Carrier:     doc.Carrier,
		AWB:         doc.AWB,
		TrackingURL: doc.TrackingURL,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
