package routes

import (
	"cmp"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/network"
	"golang.org/x/exp/slices"
)

type lineDetail struct {
	Line     interface{} `json:"line"`
	Stations []string    `json:"stations"`
}

func LinesRouter(router fiber.Router, net *network.Network) {
	router.Get("/", func(c *fiber.Ctx) error {
		linesReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, net.AllLines())
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Lines",
			})
		}

		return c.JSON(linesReduced)
	})
	router.Get("/:number", func(c *fiber.Ctx) error {
		return getLine(c, net)
	})
}

func getLine(c *fiber.Ctx, net *network.Network) error {
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Line number should be an integer",
		})
	}

	line, exists := net.Line(number)
	if !exists {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Line matching Line Number",
		})
	}

	lineReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"detailed"},
	}, line)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Line",
		})
	}

	stations := net.AllStations()
	stations = slices.DeleteFunc(stations, func(station *metro.Station) bool {
		_, onLine := station.Position(number)
		return !onLine
	})
	slices.SortStableFunc(stations, func(a, b *metro.Station) int {
		aPosition, _ := a.Position(number)
		bPosition, _ := b.Position(number)
		return cmp.Compare(aPosition, bPosition)
	})

	stationIDs := make([]string, 0, len(stations))
	for _, station := range stations {
		stationIDs = append(stationIDs, station.ID)
	}

	return c.JSON(lineDetail{
		Line:     lineReduced,
		Stations: stationIDs,
	})
}
