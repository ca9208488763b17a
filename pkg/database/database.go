package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

const connectTimeout = 30 * time.Second

// Connect opens the MongoDB connection, retrying the initial ping with exponential backoff
func Connect(ctx context.Context, mongoConfig config.MongoDBConfig) (*MongoInstance, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoConfig.Connection))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = connectTimeout

	err = backoff.RetryNotify(func() error {
		return client.Ping(ctx, nil)
	}, backoff.WithContext(retryBackoff, ctx), func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("wait", wait).Msg("MongoDB not reachable, retrying")
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	instance := &MongoInstance{
		Client:   client,
		Database: client.Database(mongoConfig.Database),
	}

	instance.createIndexes(ctx)

	log.Info().Str("database", mongoConfig.Database).Msg("Connected to MongoDB")

	return instance, nil
}

func (m *MongoInstance) GetCollection(collectionName string) *mongo.Collection {
	return m.Database.Collection(collectionName)
}

func (m *MongoInstance) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
