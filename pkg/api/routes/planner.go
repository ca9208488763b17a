package routes

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/arrivals"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/journeyplanner"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/util"
	"github.com/rs/zerolog/log"
)

type stationSummary struct {
	ID          string              `json:"id"`
	Name        metro.BilingualName `json:"name"`
	Disabled    bool                `json:"disabled"`
	LineNumbers []int               `json:"lines"`
}

type planResponse struct {
	ID          string           `json:"id"`
	Origin      stationSummary   `json:"origin"`
	Destination stationSummary   `json:"destination"`
	Transfers   int              `json:"transfers"`
	Items       []metro.PathItem `json:"items"`

	TimesPending bool                 `json:"times_pending"`
	Times        map[string]string    `json:"times,omitempty"`
	TotalTime    *metro.BilingualName `json:"total_time,omitempty"`
}

type timesResponse struct {
	PlanID    string              `json:"plan_id"`
	Times     map[string]string   `json:"times"`
	Minutes   int                 `json:"minutes"`
	TotalTime metro.BilingualName `json:"total_time"`
}

func PlannerRouter(router fiber.Router, journeyPlanner *journeyplanner.Planner, overlayWait time.Duration) {
	router.Get("/:origin/:destination", func(c *fiber.Ctx) error {
		return getPlan(c, journeyPlanner, overlayWait)
	})
	router.Get("/:origin/:destination/times", func(c *fiber.Ctx) error {
		return getPlanTimes(c, journeyPlanner)
	})
}

func getPlan(c *fiber.Ctx, journeyPlanner *journeyplanner.Planner, overlayWait time.Duration) error {
	plan, err := planFromParams(c, journeyPlanner)
	if err != nil {
		return sendPlanError(c, err)
	}

	referenceTime, err := referenceTimeFromQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	response := planResponse{
		ID:        plan.ID,
		Transfers: plan.Transfers,
		Items:     plan.Items,
	}
	if err := copier.Copy(&response.Origin, plan.Origin); err != nil {
		log.Error().Err(err).Msg("Failed to copy origin station")
	}
	if err := copier.Copy(&response.Destination, plan.Destination); err != nil {
		log.Error().Err(err).Msg("Failed to copy destination station")
	}

	overlay := journeyPlanner.StartEstimate(context.Background(), plan, journeyPlanner.EstimateOptions(referenceTime))

	ctx, cancel := context.WithTimeout(c.UserContext(), overlayWait)
	defer cancel()

	estimate, err := overlay.Wait(ctx)
	if err != nil {
		overlay.Cancel()
		response.TimesPending = true
	} else {
		response.Times = clockTimes(estimate)
		response.TotalTime = &estimate.Text
	}

	return c.JSON(response)
}

func getPlanTimes(c *fiber.Ctx, journeyPlanner *journeyplanner.Planner) error {
	plan, err := planFromParams(c, journeyPlanner)
	if err != nil {
		return sendPlanError(c, err)
	}

	referenceTime, err := referenceTimeFromQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	estimate, err := journeyPlanner.Estimate(c.UserContext(), plan, journeyPlanner.EstimateOptions(referenceTime))
	if err != nil {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(timesResponse{
		PlanID:    plan.ID,
		Times:     clockTimes(estimate),
		Minutes:   estimate.Minutes,
		TotalTime: estimate.Text,
	})
}

func planFromParams(c *fiber.Ctx, journeyPlanner *journeyplanner.Planner) (*journeyplanner.Plan, error) {
	origin, err := url.PathUnescape(c.Params("origin"))
	if err != nil {
		return nil, err
	}
	destination, err := url.PathUnescape(c.Params("destination"))
	if err != nil {
		return nil, err
	}

	return journeyPlanner.Plan(origin, destination)
}

func sendPlanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, journeyplanner.ErrStationNotFound), errors.Is(err, journeyplanner.ErrNoRoute):
		c.SendStatus(fiber.StatusNotFound)
	default:
		c.SendStatus(fiber.StatusBadRequest)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

// referenceTimeFromQuery reads either an RFC3339 datetime or an HH:MM time for today
func referenceTimeFromQuery(c *fiber.Ctx) (time.Time, error) {
	if datetime := c.Query("datetime"); datetime != "" {
		parsed, err := time.Parse(time.RFC3339, datetime)
		if err != nil {
			return time.Time{}, errors.New("parameter datetime should be an RFC3339/ISO8601 datetime")
		}
		return parsed, nil
	}

	if clock := c.Query("time"); clock != "" {
		parsed, err := time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, errors.New("parameter time should be formatted as HH:MM")
		}
		return util.ClockOnDate(time.Now(), parsed), nil
	}

	return time.Now(), nil
}

func clockTimes(estimate *arrivals.Estimate) map[string]string {
	times := make(map[string]string, len(estimate.Times))
	for stationID := range estimate.Times {
		times[stationID], _ = estimate.Clock(stationID)
	}

	return times
}
