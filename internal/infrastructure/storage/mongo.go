package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/funnfood/storefront/internal/core/domain"
)

const (
	mongoConnectTimeout = 10 * time.Second
	stateCollection     = "client_state"
)

// MongoConfig captures the minimal settings required to establish a MongoDB
// connection.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// ConnectMongo establishes a MongoDB client, verifies connectivity with a
// ping, and returns both the client and the selected database. A default
// timeout is applied when none is provided.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = mongoConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Mongo is a durable Storage over a single key/value collection, for
// deployments that already run the document store and want client state in
// it rather than on local disk.
type Mongo struct {
	coll *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{coll: db.Collection(stateCollection)}
}

type stateDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func (m *Mongo) Get(ctx context.Context, key string) (string, error) {
	var doc stateDoc
	if err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("mongo get %s: %w", key, err)
	}
	return doc.Value, nil
}

func (m *Mongo) Set(ctx context.Context, key, value string) error {
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key},
		stateDoc{Key: key, Value: value},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo del %s: %w", key, err)
	}
	return nil
}
