package routes

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/network"
	"golang.org/x/exp/slices"
)

func StationsRouter(router fiber.Router, net *network.Network) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listStations(c, net)
	})
	router.Get("/:identifier", func(c *fiber.Ctx) error {
		return getStation(c, net)
	})
}

func listStations(c *fiber.Ctx, net *network.Network) error {
	stations := net.AllStations()

	if lineQuery := c.Query("line"); lineQuery != "" {
		line, err := strconv.Atoi(lineQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter line should be an integer",
			})
		}

		stations = slices.DeleteFunc(stations, func(station *metro.Station) bool {
			_, onLine := station.Position(line)
			return !onLine
		})
	}

	stationsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, stations)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Stations",
		})
	}

	return c.JSON(stationsReduced)
}

func getStation(c *fiber.Ctx, net *network.Network) error {
	identifier, _ := url.PathUnescape(c.Params("identifier"))

	station, exists := net.Station(identifier)
	if !exists {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Station matching Station Identifier",
		})
	}

	stationReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"detailed"},
	}, station)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Station",
		})
	}

	return c.JSON(stationReduced)
}
