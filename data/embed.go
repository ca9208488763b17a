// Package data bundles the default Tehran metro network and sample timetables.
package data

import "embed"

//go:embed stations.yaml lines.yaml schedules/*.csv
var FS embed.FS

const (
	StationsFile    = "stations.yaml"
	LinesFile       = "lines.yaml"
	SchedulePattern = "schedules/line-%d.csv"
)
