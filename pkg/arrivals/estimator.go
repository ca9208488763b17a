package arrivals

import (
	"context"
	"errors"
	"time"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const DefaultTransferDelay = 4 * time.Minute

type Options struct {
	ReferenceTime time.Time
	Weekday       time.Weekday
	TransferDelay time.Duration
}

// DefaultOptions starts the estimate now, on today's schedule, with the default transfer delay
func DefaultOptions() Options {
	now := time.Now()

	return Options{
		ReferenceTime: now,
		Weekday:       now.Weekday(),
		TransferDelay: DefaultTransferDelay,
	}
}

// Estimate is the timing overlay of one itinerary
type Estimate struct {
	// Times maps station ids to fractional-day arrival times
	Times map[string]float64
	// Segments counts every Title walked, branch flips included, so it is not the
	// number of line changes a plan reports
	Segments int
	Minutes  int
	Text     metro.BilingualName
}

// Clock returns the HH:MM arrival time at a station, if it was timed
func (e *Estimate) Clock(stationID string) (string, bool) {
	fraction, exists := e.Times[stationID]
	if !exists {
		return "", false
	}

	return metro.FormatClock(fraction), true
}

type Estimator struct {
	Lines     LineDirectory
	Schedules ScheduleProvider
}

func NewEstimator(lines LineDirectory, schedules ScheduleProvider) *Estimator {
	return &Estimator{
		Lines:     lines,
		Schedules: schedules,
	}
}

// walkCursor is the running state of an estimate walk
type walkCursor struct {
	time        float64
	line        int
	destination metro.BilingualName
	branch      bool
	heading     metro.Heading
	segments    int

	first    float64
	last     float64
	recorded bool
}

// Estimate walks the itinerary assigning each station the next departure after the
// previous one. Stations without a resolvable schedule stay untimed. A cancelled
// context returns its error and no partial result.
func (e *Estimator) Estimate(ctx context.Context, items []metro.PathItem, options Options) (*Estimate, error) {
	if options.ReferenceTime.IsZero() {
		options.ReferenceTime = time.Now()
		options.Weekday = options.ReferenceTime.Weekday()
	}
	if options.TransferDelay < 0 {
		options.TransferDelay = DefaultTransferDelay
	}

	e.prefetch(ctx, items)

	estimate := &Estimate{Times: map[string]float64{}}
	cursor := walkCursor{time: metro.FractionOfDay(options.ReferenceTime)}
	scheduleTypes := metro.ScheduleTypesFor(options.Weekday)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch item := item.(type) {
		case metro.Title:
			cursor.line = item.Line
			cursor.destination = item.Direction
			cursor.branch = item.Branch
			cursor.heading = item.Heading
			cursor.segments++
		case metro.StationItem:
			if item.Station == nil {
				continue
			}
			if _, timed := estimate.Times[item.Station.ID]; timed {
				continue
			}

			departure, found, err := e.nextDeparture(ctx, item.Station.ID, &cursor, scheduleTypes)
			if err != nil {
				return nil, err
			}
			if !found {
				continue
			}

			estimate.Times[item.Station.ID] = departure
			cursor.time = departure
			if !cursor.recorded {
				cursor.first = departure
				cursor.recorded = true
			}
			cursor.last = departure
		}
	}

	estimate.Segments = cursor.segments

	transferMinutes := int(options.TransferDelay / time.Minute)
	estimate.Minutes = max(cursor.segments-1, 0) * transferMinutes
	if cursor.recorded {
		estimate.Minutes += metro.MinutesBetween(cursor.first, cursor.last)
	}
	estimate.Text = FormatDuration(estimate.Minutes)

	return estimate, nil
}

func (e *Estimator) nextDeparture(ctx context.Context, stationID string, cursor *walkCursor, scheduleTypes []metro.ScheduleType) (float64, bool, error) {
	groups, err := e.Schedules.GetSchedule(ctx, stationID, cursor.line, cursor.branch)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, false, err
		}

		log.Debug().Err(err).Str("station", stationID).Int("line", cursor.line).Msg("Station left untimed")
		return 0, false, nil
	}

	group := e.chooseGroup(groups, cursor)
	if group == nil {
		return 0, false, nil
	}

	times := departuresFor(group, scheduleTypes)
	if len(times) == 0 {
		return 0, false, nil
	}

	return NextTime(times, cursor.time), true, nil
}

// chooseGroup prefers the segment's destination, then the line's main endpoint and
// then its branch endpoint in the direction of travel
func (e *Estimator) chooseGroup(groups []metro.GroupedScheduleInfo, cursor *walkCursor) *metro.GroupedScheduleInfo {
	candidates := []metro.BilingualName{cursor.destination}

	if e.Lines != nil && cursor.heading != "" {
		if endpoints, exists := e.Lines.Endpoints(cursor.line, false); exists {
			candidates = append(candidates, endpoints.Toward(cursor.heading))
		}
		if endpoints, exists := e.Lines.Endpoints(cursor.line, true); exists {
			candidates = append(candidates, endpoints.Toward(cursor.heading))
		}
	}

	for _, candidate := range candidates {
		if candidate.IsZero() {
			continue
		}

		index := slices.IndexFunc(groups, func(group metro.GroupedScheduleInfo) bool {
			return candidate.Matches(group.Destination)
		})
		if index != -1 {
			return &groups[index]
		}
	}

	return nil
}

func departuresFor(group *metro.GroupedScheduleInfo, scheduleTypes []metro.ScheduleType) []float64 {
	for _, scheduleType := range scheduleTypes {
		if times := group.Times[scheduleType]; len(times) > 0 {
			return times
		}
	}

	return nil
}

// NextTime returns the earliest sorted time strictly after cursor, wrapping to the
// first departure of the next day when the cursor is past the last one
func NextTime(times []float64, cursor float64) float64 {
	index, _ := slices.BinarySearch(times, cursor)
	for index < len(times) && times[index] <= cursor {
		index++
	}
	if index == len(times) {
		return times[0]
	}

	return times[index]
}

func (e *Estimator) prefetch(ctx context.Context, items []metro.PathItem) {
	prefetcher, ok := e.Schedules.(Prefetcher)
	if !ok {
		return
	}

	var lines []int
	for _, title := range metro.Titles(items) {
		if !slices.Contains(lines, title.Line) {
			lines = append(lines, title.Line)
		}
	}
	if len(lines) == 0 {
		return
	}

	if err := prefetcher.Prefetch(ctx, lines); err != nil {
		log.Debug().Err(err).Ints("lines", lines).Msg("Timetable prefetch incomplete")
	}
}
