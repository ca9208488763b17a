package arrivals

import (
	"context"
	"errors"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
)

var ErrNoSchedule = errors.New("no schedule for station")

// ScheduleProvider returns every destination group departing a station on a line.
// An empty result is valid and leaves the station untimed.
type ScheduleProvider interface {
	GetSchedule(ctx context.Context, stationID string, line int, branch bool) ([]metro.GroupedScheduleInfo, error)
}

// Prefetcher is implemented by providers that can warm whole lines ahead of a walk
type Prefetcher interface {
	Prefetch(ctx context.Context, lines []int) error
}

// TimetableSource loads the complete timetable of one line
type TimetableSource interface {
	LineTimetable(ctx context.Context, line int) (*metro.LineTimetable, error)
}

// LineDirectory resolves the endpoint names of a line's main path or branch
type LineDirectory interface {
	Endpoints(line int, branch bool) (*metro.Endpoints, bool)
}
