package api

import (
	"context"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/app"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the route planner web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the configured address",
					},
				},
				Action: func(c *cli.Context) error {
					services, err := app.Setup(context.Background(), c.String("config"))
					if err != nil {
						return err
					}
					defer services.Close()

					listen := services.Config.API.ListenAddress
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					log.Info().Str("listen", listen).Msg("Starting web API")

					return SetupServer(listen, services.Planner, services.Config.Planner.OverlayWaitDuration())
				},
			},
		},
	}
}
