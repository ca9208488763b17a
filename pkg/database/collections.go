package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StationsCollection  = "stations"
	LinesCollection     = "lines"
	SchedulesCollection = "schedules"
)

func (m *MongoInstance) createIndexes(ctx context.Context) {
	indexes := map[string][]mongo.IndexModel{
		StationsCollection: {
			{
				Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "lines.line", Value: 1}},
			},
		},
		LinesCollection: {
			{
				Keys:    bson.D{{Key: "number", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		SchedulesCollection: {
			{
				Keys: bson.D{
					{Key: "line", Value: 1},
					{Key: "stationid", Value: 1},
					{Key: "branch", Value: 1},
					{Key: "destination.en", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for collection, models := range indexes {
		_, err := m.GetCollection(collection).Indexes().CreateMany(ctx, models, options.CreateIndexes())
		if err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("Creating Index")
		}
	}
}
