package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const orderEventsCollection = "order_events"

var _ ports.OrderEventRepository = (*OrderEventRepository)(nil)

// OrderEventRepository implements ports.OrderEventRepository using MongoDB.
type OrderEventRepository struct {
	col *mongo.Collection
}

func NewOrderEventRepository(db *mongo.Database) *OrderEventRepository {
	return &OrderEventRepository{col: db.Collection(orderEventsCollection)}
}

// Insert appends e to the audit trail. A zero OccurredAt is stamped with the
// current time.
func (r *OrderEventRepository) Insert(ctx context.Context, e domain.OrderEvent) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	e.OccurredAt = e.OccurredAt.UTC()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// ListByOrder returns the trail of one order, oldest first.
func (r *OrderEventRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find order events: %w", err)
	}
	defer cur.Close(ctx)

	events := []domain.OrderEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode order events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates the index ListByOrder relies on.
func (r *OrderEventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "occurred_at", Value: 1}},
	})
	return err
}
