package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/secondchance/apiserver/config"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultPingTimeout    = 5 * time.Second
	defaultConnectTimeout = 10 * time.Second

	UsersCollection = "users"
	GiftsCollection = "gifts"
)

// Open connects to the document store once, verifies the connection and
// ensures the indexes the repositories rely on. The returned handle is
// owned by the caller and passed by reference to every component that needs
// it; nothing else in the process opens a connection.
func Open(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	if strings.TrimSpace(cfg.Mongo.URL) == "" {
		return nil, errors.New("mongo url is required")
	}
	if strings.TrimSpace(cfg.Mongo.Database) == "" {
		return nil, errors.New("mongo database name is required")
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.Mongo.URL).
		SetConnectTimeout(defaultConnectTimeout))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	database := client.Database(cfg.Mongo.Database)
	if err := ensureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return database, nil
}

// Close disconnects the client behind the database handle.
func Close(ctx context.Context, database *mongo.Database) error {
	if database == nil {
		return nil
	}
	return database.Client().Disconnect(ctx)
}

// ensureIndexes creates the unique email index backing registration
// uniqueness and a lookup index on the gifts business key.
func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = database.Collection(GiftsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
	})
	return err
}
