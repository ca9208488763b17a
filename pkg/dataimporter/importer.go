package dataimporter

import (
	"context"
	"fmt"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/database"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/dataprovider"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Importer copies a file dataset into MongoDB, replacing records with the same identity
type Importer struct {
	Source   *dataprovider.FileProvider
	Database *mongo.Database
}

type Summary struct {
	Stations  int
	Lines     int
	Schedules int
}

func (i *Importer) Import(ctx context.Context) (*Summary, error) {
	stations, err := i.Source.Stations()
	if err != nil {
		return nil, err
	}
	lines, err := i.Source.Lines()
	if err != nil {
		return nil, err
	}

	// Validate the dataset before anything is written
	if _, err := i.Source.LoadNetwork(ctx); err != nil {
		return nil, fmt.Errorf("dataset is not a valid network: %w", err)
	}

	summary := &Summary{
		Stations: len(stations),
		Lines:    len(lines),
	}

	if err := i.write(ctx, database.StationsCollection, StationOperations(stations)); err != nil {
		return nil, err
	}
	if err := i.write(ctx, database.LinesCollection, LineOperations(lines)); err != nil {
		return nil, err
	}

	for _, line := range lines {
		timetable, err := i.Source.LineTimetable(ctx, line.Number)
		if err != nil {
			log.Warn().Err(err).Int("line", line.Number).Msg("Skipping line without timetable")
			continue
		}

		documents := dataprovider.DocumentsFromTimetable(timetable)
		if err := i.write(ctx, database.SchedulesCollection, ScheduleOperations(documents)); err != nil {
			return nil, err
		}
		summary.Schedules += len(documents)
	}

	log.Info().
		Int("stations", summary.Stations).
		Int("lines", summary.Lines).
		Int("schedules", summary.Schedules).
		Msg("Imported dataset")

	return summary, nil
}

func (i *Importer) write(ctx context.Context, collectionName string, operations []mongo.WriteModel) error {
	if len(operations) == 0 {
		return nil
	}

	_, err := i.Database.Collection(collectionName).BulkWrite(ctx, operations, &options.BulkWriteOptions{})
	if err != nil {
		return fmt.Errorf("bulk write %s: %w", collectionName, err)
	}

	return nil
}

func StationOperations(stations []*metro.Station) []mongo.WriteModel {
	operations := make([]mongo.WriteModel, 0, len(stations))
	for _, station := range stations {
		replaceModel := mongo.NewReplaceOneModel()
		replaceModel.SetFilter(bson.M{"primaryidentifier": station.ID})
		replaceModel.SetReplacement(station)
		replaceModel.SetUpsert(true)

		operations = append(operations, replaceModel)
	}

	return operations
}

func LineOperations(lines []*metro.Line) []mongo.WriteModel {
	operations := make([]mongo.WriteModel, 0, len(lines))
	for _, line := range lines {
		replaceModel := mongo.NewReplaceOneModel()
		replaceModel.SetFilter(bson.M{"number": line.Number})
		replaceModel.SetReplacement(line)
		replaceModel.SetUpsert(true)

		operations = append(operations, replaceModel)
	}

	return operations
}

func ScheduleOperations(documents []dataprovider.ScheduleDocument) []mongo.WriteModel {
	operations := make([]mongo.WriteModel, 0, len(documents))
	for _, document := range documents {
		replaceModel := mongo.NewReplaceOneModel()
		replaceModel.SetFilter(bson.M{
			"line":           document.Line,
			"stationid":      document.StationID,
			"branch":         document.Branch,
			"destination.en": document.Destination.En,
		})
		replaceModel.SetReplacement(document)
		replaceModel.SetUpsert(true)

		operations = append(operations, replaceModel)
	}

	return operations
}
