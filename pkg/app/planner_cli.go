package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kr/pretty"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/journeyplanner"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/util"
	"github.com/urfave/cli/v2"
)

// RegisterPlannerCLI plans a single route against the configured data
func RegisterPlannerCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Plan routes from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "print the route and arrival times between two stations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "origin station id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "destination station id",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "time",
						Usage: "departure time as HH:MM, defaults to now",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "dump the raw plan and estimate",
					},
				},
				Action: func(c *cli.Context) error {
					ctx := context.Background()

					services, err := Setup(ctx, c.String("config"))
					if err != nil {
						return err
					}
					defer services.Close()

					referenceTime := time.Now()
					if c.String("time") != "" {
						clock, err := time.Parse("15:04", c.String("time"))
						if err != nil {
							return fmt.Errorf("parse time %q: %w", c.String("time"), err)
						}
						referenceTime = util.ClockOnDate(referenceTime, clock)
					}

					plan, err := services.Planner.Plan(c.String("from"), c.String("to"))
					if err != nil {
						return err
					}

					estimate, err := services.Planner.Estimate(ctx, plan, services.Planner.EstimateOptions(referenceTime))
					if err != nil {
						return err
					}

					if c.Bool("debug") {
						pretty.Println(plan.Path)
						pretty.Println(estimate)
					}

					fmt.Print(journeyplanner.Describe(plan, estimate))

					return nil
				},
			},
		},
	}
}
