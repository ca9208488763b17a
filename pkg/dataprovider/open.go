package dataprovider

import (
	"context"
	"fmt"
	"os"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/config"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/database"
)

// Open builds the provider named by the data configuration. The returned close
// function releases any connection the provider holds.
func Open(ctx context.Context, appConfig *config.Config) (Provider, func(), error) {
	switch Format(appConfig.Data.Source) {
	case FormatFile:
		return NewFileProvider(appConfig.Data), func() {}, nil
	case FormatMongoDB:
		instance, err := database.Connect(ctx, appConfig.MongoDB)
		if err != nil {
			return nil, nil, err
		}

		closer := func() {
			_ = instance.Disconnect(context.Background())
		}

		return &MongoProvider{Database: instance.Database}, closer, nil
	default:
		return nil, nil, fmt.Errorf("%s: %w", appConfig.Data.Source, ErrUnknownFormat)
	}
}

// NewFileProvider reads from the configured directory, or the bundled data when none is set
func NewFileProvider(dataConfig config.DataConfig) *FileProvider {
	if dataConfig.Directory == "" {
		return Bundled()
	}

	return &FileProvider{
		FS:              os.DirFS(dataConfig.Directory),
		StationsPath:    dataConfig.StationsFile,
		LinesPath:       dataConfig.LinesFile,
		SchedulePattern: dataConfig.SchedulePattern,
	}
}
