package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertOrders persists one snapshot row per cart line. Each order is
// stamped with the buyer's id and the insertion time. Callers must not
// clear the buyer's cart unless this returns nil.
func (m *MongoDB) InsertOrders(ctx context.Context, buyerID primitive.ObjectID, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		o.ID = primitive.NewObjectID()
		o.UserID = buyerID
		o.CreatedAt = now
		docs = append(docs, o)
	}

	_, err := m.Orders.InsertMany(ctx, docs)
	return err
}

// GetOrdersByUser lists a buyer's order history, newest first.
func (m *MongoDB) GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := m.Orders.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []*Order{}
	err = cur.All(ctx, &orders)
	return orders, err
}
