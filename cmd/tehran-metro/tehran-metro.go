package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/api"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/app"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/dataimporter"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/journeygraph"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	if os.Getenv("METRO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("METRO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	cliApp := &cli.App{
		Name:        "tehran-metro",
		Description: "Route planning and arrival estimates for the Tehran metro",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				EnvVars: []string{"METRO_CONFIG"},
			},
		},

		Commands: []*cli.Command{
			api.RegisterCLI(),
			app.RegisterPlannerCLI(),
			dataimporter.RegisterCLI(),
			journeygraph.RegisterCLI(),
		},
	}

	err := cliApp.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
