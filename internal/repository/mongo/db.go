package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when the connection string names no database.
const DefaultDatabase = "devevents"

const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"
)

// DBGetter yields the shared database handle, opening it on first use.
type DBGetter interface {
	Get(ctx context.Context) (*mongo.Database, error)
}

// Connect connects to the deployment in uri, pings the primary and makes sure the
// indexes exist.
func Connect(ctx context.Context, uri string) (*mongo.Database, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse mongodb uri: %w", err)
	}

	client, err := mongo.Connect(ctx,
		options.Client().ApplyURI(cs.String()),
		options.Client().SetConnectTimeout(10*time.Second),
		options.Client().SetServerSelectionTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	name := cs.Database
	if name == "" {
		name = DefaultDatabase
	}
	db := client.Database(name)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return db, nil
}

// EnsureIndexes creates the unique slug index and the lookup indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(eventsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create event indexes: %w", err)
	}
	_, err = db.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "eventId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create booking indexes: %w", err)
	}
	return nil
}

// Disconnect closes the client behind db; it matches store.Closer.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}
