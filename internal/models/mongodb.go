package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB bundles the three collections the service owns. All
// aggregate mutations are read-modify-write on whole documents with no
// version checks; two concurrent requests touching the same user or
// product can lose an update. Known hazard, deliberately not papered
// over here.
type MongoDB struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Orders   *mongo.Collection
}

// EnsureIndexes creates the search indexes on products and the unique
// email index on users. Called once at startup.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.Products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: "text"}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
