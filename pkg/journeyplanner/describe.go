package journeyplanner

import (
	"fmt"
	"strings"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/arrivals"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
)

// Describe renders a plan as plain text, one line per title or station.
// Times are included when an estimate is given.
func Describe(plan *Plan, estimate *arrivals.Estimate) string {
	var builder strings.Builder

	for _, item := range plan.Items {
		switch item := item.(type) {
		case metro.Title:
			direction := item.Direction.En
			if item.Branch {
				direction += " (branch)"
			}
			fmt.Fprintf(&builder, "Line %d towards %s\n", item.Line, direction)
		case metro.StationItem:
			marker := " "
			if item.Passthrough {
				marker = "x"
			}

			clock := "     "
			if estimate != nil {
				if stationClock, timed := estimate.Clock(item.Station.ID); timed {
					clock = stationClock
				}
			}

			fmt.Fprintf(&builder, "  %s %s %s\n", marker, clock, item.Station.Name.En)
		}
	}

	fmt.Fprintf(&builder, "Transfers: %d\n", plan.Transfers)
	if estimate != nil {
		fmt.Fprintf(&builder, "Total: %s\n", estimate.Text.En)
	}

	return builder.String()
}
