package dataprovider

import (
	"context"
	"fmt"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/database"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/network"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScheduleDocument is one station/destination timetable as stored in MongoDB
type ScheduleDocument struct {
	StationID   string                           `bson:"stationid"`
	Line        int                              `bson:"line"`
	Branch      bool                             `bson:"branch"`
	Destination metro.BilingualName              `bson:"destination"`
	Times       map[metro.ScheduleType][]float64 `bson:"times"`
}

type MongoProvider struct {
	Database *mongo.Database
}

func (m *MongoProvider) LoadNetwork(ctx context.Context) (*network.Network, error) {
	var stations []*metro.Station
	cursor, err := m.Database.Collection(database.StationsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find stations: %w", err)
	}
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, fmt.Errorf("decode stations: %w", err)
	}

	var lines []*metro.Line
	cursor, err = m.Database.Collection(database.LinesCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find lines: %w", err)
	}
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("decode lines: %w", err)
	}

	stationMap := make(map[string]*metro.Station, len(stations))
	for _, station := range stations {
		stationMap[station.ID] = station
	}

	log.Info().Int("stations", len(stationMap)).Int("lines", len(lines)).Msg("Loaded network from MongoDB")

	return network.New(stationMap, lines)
}

func (m *MongoProvider) LineTimetable(ctx context.Context, line int) (*metro.LineTimetable, error) {
	cursor, err := m.Database.Collection(database.SchedulesCollection).Find(ctx, bson.M{"line": line})
	if err != nil {
		return nil, fmt.Errorf("find schedules for line %d: %w", line, err)
	}

	var documents []ScheduleDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decode schedules for line %d: %w", line, err)
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("line %d: %w", line, ErrNoTimetable)
	}

	return TimetableFromDocuments(line, documents), nil
}

func TimetableFromDocuments(line int, documents []ScheduleDocument) *metro.LineTimetable {
	var entries []metro.ScheduleEntry
	for _, document := range documents {
		for scheduleType, times := range document.Times {
			for _, departure := range times {
				entries = append(entries, metro.ScheduleEntry{
					StationID:   document.StationID,
					Line:        document.Line,
					Branch:      document.Branch,
					Destination: document.Destination,
					Type:        scheduleType,
					Time:        departure,
				})
			}
		}
	}

	return metro.GroupScheduleEntries(line, entries)
}

// DocumentsFromTimetable is the inverse of TimetableFromDocuments, used by the importer
func DocumentsFromTimetable(timetable *metro.LineTimetable) []ScheduleDocument {
	var documents []ScheduleDocument
	for key, groups := range timetable.Stations {
		for _, group := range groups {
			documents = append(documents, ScheduleDocument{
				StationID:   key.StationID,
				Line:        timetable.Line,
				Branch:      key.Branch,
				Destination: group.Destination,
				Times:       group.Times,
			})
		}
	}

	return documents
}
