package dataimporter

import (
	"context"
	"time"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/config"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/database"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/dataprovider"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Load station, line and schedule files into MongoDB",
		Subcommands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Import a dataset directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "directory",
						Usage: "dataset directory, the bundled dataset is used when empty",
					},
				},
				Action: func(c *cli.Context) error {
					ctx := context.Background()

					appConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					dataConfig := appConfig.Data
					if c.String("directory") != "" {
						dataConfig.Directory = c.String("directory")
					}

					instance, err := database.Connect(ctx, appConfig.MongoDB)
					if err != nil {
						log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
					}
					defer instance.Disconnect(ctx)

					startTime := time.Now()

					importer := &Importer{
						Source:   dataprovider.NewFileProvider(dataConfig),
						Database: instance.Database,
					}
					if _, err := importer.Import(ctx); err != nil {
						return err
					}

					log.Info().Msgf("Operation took %s", time.Since(startTime).String())

					return nil
				},
			},
		},
	}
}
