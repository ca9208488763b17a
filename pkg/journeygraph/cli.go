package journeygraph

import (
	"context"
	"errors"

	"github.com/kr/pretty"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/config"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/dataprovider"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "journeygraph",
		Usage: "Exports the station network as a graph",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "write stations and connections into Neo4j",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "database",
						Value: "neo4j",
						Usage: "Neo4j database name",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "print the graph instead of writing it",
					},
				},
				Action: func(c *cli.Context) error {
					ctx := context.Background()

					appConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					provider, closeProvider, err := dataprovider.Open(ctx, appConfig)
					if err != nil {
						return err
					}
					defer closeProvider()

					net, err := provider.LoadNetwork(ctx)
					if err != nil {
						return err
					}

					graph := BuildGraph(net)

					if c.Bool("dry-run") {
						pretty.Println(graph)
						return nil
					}

					if appConfig.Neo4j.URI == "" {
						return errors.New("no Neo4j uri configured")
					}

					driver, err := neo4j.NewDriverWithContext(
						appConfig.Neo4j.URI,
						neo4j.BasicAuth(appConfig.Neo4j.Username, appConfig.Neo4j.Password, ""))
					if err != nil {
						return err
					}
					defer driver.Close(ctx)

					if err := driver.VerifyConnectivity(ctx); err != nil {
						return err
					}

					return Export(ctx, driver, c.String("database"), graph)
				},
			},
		},
	}
}
