package arrivals

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/dataprovider"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/itinerary"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSchedules map[string][]metro.GroupedScheduleInfo

func scheduleKey(stationID string, line int, branch bool) string {
	return fmt.Sprintf("%s/%d/%t", stationID, line, branch)
}

func (s staticSchedules) GetSchedule(ctx context.Context, stationID string, line int, branch bool) ([]metro.GroupedScheduleInfo, error) {
	groups, exists := s[scheduleKey(stationID, line, branch)]
	if !exists {
		return nil, ErrNoSchedule
	}

	return groups, nil
}

func clocks(t *testing.T, values ...string) []float64 {
	t.Helper()

	var fractions []float64
	for _, value := range values {
		fraction, err := metro.ParseClock(value)
		require.NoError(t, err)
		fractions = append(fractions, fraction)
	}

	return fractions
}

func at(clock string, weekday time.Weekday) Options {
	parsed, _ := time.Parse("15:04", clock)
	// 2024-06-01 is a Saturday
	day := 1 + (int(weekday)+1)%7

	return Options{
		ReferenceTime: time.Date(2024, time.June, day, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC),
		Weekday:       weekday,
		TransferDelay: DefaultTransferDelay,
	}
}

var (
	northbound = metro.BilingualName{En: "Tajrish", Fa: "تجریش"}
	southbound = metro.BilingualName{En: "Kahrizak", Fa: "کهریزک"}
)

func stationItems(line int, ids ...string) []metro.PathItem {
	var items []metro.PathItem
	for _, id := range ids {
		items = append(items, metro.NewStationItem(&metro.Station{ID: id}, line))
	}

	return items
}

func TestNextTime(t *testing.T) {
	times := []float64{0.25, 0.5, 0.75}

	assert.Equal(t, 0.25, NextTime(times, 0.1))
	assert.Equal(t, 0.5, NextTime(times, 0.25))
	assert.Equal(t, 0.75, NextTime(times, 0.6))
	assert.Equal(t, 0.25, NextTime(times, 0.75))
	assert.Equal(t, 0.25, NextTime(times, 0.9))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, metro.BilingualName{En: "0 minutes", Fa: "0 دقیقه"}, FormatDuration(0))
	assert.Equal(t, metro.BilingualName{En: "45 minutes", Fa: "45 دقیقه"}, FormatDuration(45))
	assert.Equal(t, metro.BilingualName{En: "1 hours 0 minutes", Fa: "1 ساعت و 0 دقیقه"}, FormatDuration(60))
	assert.Equal(t, metro.BilingualName{En: "2 hours 5 minutes", Fa: "2 ساعت و 5 دقیقه"}, FormatDuration(125))
	assert.Equal(t, "0 minutes", FormatDuration(-3).En)
}

func TestWraparoundAfterLastDeparture(t *testing.T) {
	schedules := staticSchedules{
		scheduleKey("A", 1, false): {{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "06:00", "22:00")}}},
		scheduleKey("B", 1, false): {{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "06:10", "22:10")}}},
	}
	items := append([]metro.PathItem{metro.Title{Line: 1, Direction: northbound, Heading: metro.HeadingFirst}}, stationItems(1, "A", "B")...)

	estimate, err := NewEstimator(nil, schedules).Estimate(context.Background(), items, at("23:00", time.Sunday))
	require.NoError(t, err)

	clock, timed := estimate.Clock("A")
	require.True(t, timed)
	assert.Equal(t, "06:00", clock)
	clock, _ = estimate.Clock("B")
	assert.Equal(t, "06:10", clock)

	assert.Equal(t, 10, estimate.Minutes)
	assert.Equal(t, "10 minutes", estimate.Text.En)
}

func TestWraparoundAcrossMidnight(t *testing.T) {
	schedules := staticSchedules{
		scheduleKey("A", 1, false): {{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "06:00", "23:50")}}},
		scheduleKey("B", 1, false): {{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "00:05", "06:10")}}},
	}
	items := append([]metro.PathItem{metro.Title{Line: 1, Direction: northbound, Heading: metro.HeadingFirst}}, stationItems(1, "A", "B")...)

	estimate, err := NewEstimator(nil, schedules).Estimate(context.Background(), items, at("23:00", time.Monday))
	require.NoError(t, err)

	clock, _ := estimate.Clock("A")
	assert.Equal(t, "23:50", clock)
	clock, _ = estimate.Clock("B")
	assert.Equal(t, "00:05", clock)
	assert.Equal(t, 15, estimate.Minutes)
}

func TestScheduleTypeByWeekday(t *testing.T) {
	times := map[metro.ScheduleType][]float64{
		metro.ScheduleTypeAllDay:   clocks(t, "08:10", "08:20"),
		metro.ScheduleTypeThursday: clocks(t, "08:30", "08:40"),
		metro.ScheduleTypeFriday:   clocks(t, "09:00", "09:30"),
	}
	schedules := staticSchedules{
		scheduleKey("A", 1, false): {{Destination: northbound, Times: times}},
	}
	items := append([]metro.PathItem{metro.Title{Line: 1, Direction: northbound}}, stationItems(1, "A")...)
	estimator := NewEstimator(nil, schedules)

	tests := []struct {
		weekday  time.Weekday
		expected string
	}{
		{time.Saturday, "08:10"},
		{time.Wednesday, "08:10"},
		{time.Thursday, "08:30"},
		{time.Friday, "09:00"},
	}

	for _, test := range tests {
		t.Run(test.weekday.String(), func(t *testing.T) {
			estimate, err := estimator.Estimate(context.Background(), items, at("08:00", test.weekday))
			require.NoError(t, err)

			clock, timed := estimate.Clock("A")
			require.True(t, timed)
			assert.Equal(t, test.expected, clock)
		})
	}
}

func TestGroupFallbacks(t *testing.T) {
	net, err := dataprovider.Bundled().LoadNetwork(context.Background())
	require.NoError(t, err)

	schedules := staticSchedules{
		scheduleKey("Exact", 1, false): {
			{Destination: southbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "10:00")}},
			{Destination: metro.BilingualName{En: "Shahed"}, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "10:05")}},
		},
		scheduleKey("Main", 1, false): {
			{Destination: southbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "10:10")}},
			{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "10:15")}},
		},
		scheduleKey("Branch", 1, false): {
			{Destination: metro.BilingualName{En: "Imam Khomeini Airport"}, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "10:20")}},
		},
		scheduleKey("Neither", 1, false): {
			{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "10:30")}},
		},
	}
	items := append([]metro.PathItem{
		metro.Title{Line: 1, Direction: metro.BilingualName{En: "Shahed"}, Heading: metro.HeadingSecond},
	}, stationItems(1, "Exact", "Main", "Branch", "Neither")...)

	estimate, err := NewEstimator(net, schedules).Estimate(context.Background(), items, at("09:00", time.Saturday))
	require.NoError(t, err)

	clock, _ := estimate.Clock("Exact")
	assert.Equal(t, "10:05", clock)
	clock, _ = estimate.Clock("Main")
	assert.Equal(t, "10:10", clock)
	clock, _ = estimate.Clock("Branch")
	assert.Equal(t, "10:20", clock)
	_, timed := estimate.Clock("Neither")
	assert.False(t, timed)
}

func TestTransferDelay(t *testing.T) {
	schedules := staticSchedules{
		scheduleKey("A", 4, false): {{Destination: southbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "07:00")}}},
		scheduleKey("B", 4, false): {{Destination: southbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "07:05")}}},
		scheduleKey("B", 1, false): {{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "07:12")}}},
		scheduleKey("C", 1, false): {{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "07:20")}}},
	}

	var items []metro.PathItem
	items = append(items, metro.Title{Line: 4, Direction: southbound})
	items = append(items, stationItems(4, "A", "B")...)
	items = append(items, metro.Title{Line: 1, Direction: northbound})
	items = append(items, stationItems(1, "B", "C")...)

	options := at("06:50", time.Saturday)
	options.TransferDelay = 5 * time.Minute

	estimate, err := NewEstimator(nil, schedules).Estimate(context.Background(), items, options)
	require.NoError(t, err)

	// the hinge keeps the time of its first appearance
	clock, _ := estimate.Clock("B")
	assert.Equal(t, "07:05", clock)
	assert.Equal(t, 2, estimate.Segments)
	assert.Equal(t, 20+5, estimate.Minutes)
	assert.Equal(t, metro.BilingualName{En: "25 minutes", Fa: "25 دقیقه"}, estimate.Text)
}

func TestMissingSchedulesLeaveStationsUntimed(t *testing.T) {
	schedules := staticSchedules{
		scheduleKey("B", 1, false): {{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "12:00")}}},
	}
	items := append([]metro.PathItem{metro.Title{Line: 1, Direction: northbound}}, stationItems(1, "A", "B", "C")...)

	estimate, err := NewEstimator(nil, schedules).Estimate(context.Background(), items, at("11:00", time.Saturday))
	require.NoError(t, err)

	assert.Len(t, estimate.Times, 1)
	assert.Equal(t, 0, estimate.Minutes)

	estimate, err = NewEstimator(nil, staticSchedules{}).Estimate(context.Background(), items, at("11:00", time.Saturday))
	require.NoError(t, err)
	assert.Empty(t, estimate.Times)
	assert.Equal(t, "0 minutes", estimate.Text.En)
}

func TestCancelledEstimate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := append([]metro.PathItem{metro.Title{Line: 1, Direction: northbound}}, stationItems(1, "A")...)

	estimate, err := NewEstimator(nil, staticSchedules{}).Estimate(ctx, items, at("11:00", time.Saturday))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, estimate)
}

func TestBundledBranchTrip(t *testing.T) {
	provider := dataprovider.Bundled()
	net, err := provider.LoadNetwork(context.Background())
	require.NoError(t, err)

	result, ok := planner.NewSolver(net, planner.DefaultOptions()).Solve("Karaj", "Shahid Sepahbod Soleimani")
	require.True(t, ok)
	items := itinerary.Build(net, result.Path)

	estimator := NewEstimator(net, NewScheduleCache(provider))
	estimate, err := estimator.Estimate(context.Background(), items, at("07:00", time.Saturday))
	require.NoError(t, err)

	expected := map[string]string{
		"Karaj":         "07:10",
		"Mohammadshahr": "07:12",
		"Golshahr":      "07:26",
	}
	for id, want := range expected {
		clock, timed := estimate.Clock(id)
		require.True(t, timed, id)
		assert.Equal(t, want, clock, id)
	}
	_, timed := estimate.Clock("Shahid Sepahbod Soleimani")
	assert.False(t, timed)

	assert.Equal(t, 2, estimate.Segments)
	assert.Equal(t, 16+4, estimate.Minutes)
}
