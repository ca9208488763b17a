package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/api/routes"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/journeyplanner"
)

func NewApp(journeyPlanner *journeyplanner.Planner, overlayWait time.Duration) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlannerRouter(group.Group("/planner"), journeyPlanner, overlayWait)
	routes.StationsRouter(group.Group("/stations"), journeyPlanner.Network)
	routes.LinesRouter(group.Group("/lines"), journeyPlanner.Network)

	return webApp
}

func SetupServer(listen string, journeyPlanner *journeyplanner.Planner, overlayWait time.Duration) error {
	return NewApp(journeyPlanner, overlayWait).Listen(listen)
}
