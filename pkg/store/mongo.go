package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const diagramCollection = "diagrams"

// MongoConfig configures the Mongo diagram store.
type MongoConfig struct {
	URI      string
	Database string
}

// MongoStore persists diagrams in a MongoDB collection, keyed by the
// diagram id (not Mongo's _id, so ids stay portable across backends).
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(diagramCollection),
	}, nil
}

// Put upserts the diagram document.
func (st *MongoStore) Put(ctx context.Context, d *Diagram) error {
	_, err := st.coll.ReplaceOne(ctx, bson.M{"id": d.ID}, d, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put diagram %s: %w", d.ID, err)
	}
	return nil
}

// Get retrieves a diagram by id.
func (st *MongoStore) Get(ctx context.Context, id string) (*Diagram, error) {
	var d Diagram
	err := st.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get diagram %s: %w", id, err)
	}
	return &d, nil
}

// List returns all diagrams ordered by creation time.
func (st *MongoStore) List(ctx context.Context) ([]*Diagram, error) {
	cur, err := st.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	var out []*Diagram
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	return out, nil
}

// Delete removes a diagram.
func (st *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := st.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("delete diagram %s: %w", id, err)
	}
	return nil
}

// Close disconnects the Mongo client.
func (st *MongoStore) Close(ctx context.Context) error {
	return st.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
