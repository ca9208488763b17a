package arrivals

import (
	"context"
	"testing"
	"time"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingSchedules holds every lookup until released or cancelled
type blockingSchedules struct {
	release chan struct{}
	groups  []metro.GroupedScheduleInfo
}

func (b *blockingSchedules) GetSchedule(ctx context.Context, stationID string, line int, branch bool) ([]metro.GroupedScheduleInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.release:
		return b.groups, nil
	}
}

func TestOverlayPublishesResult(t *testing.T) {
	schedules := &blockingSchedules{
		release: make(chan struct{}),
		groups:  []metro.GroupedScheduleInfo{{Destination: northbound, Times: map[metro.ScheduleType][]float64{metro.ScheduleTypeAllDay: clocks(t, "08:00", "08:05")}}},
	}
	items := append([]metro.PathItem{metro.Title{Line: 1, Direction: northbound}}, stationItems(1, "A", "B")...)

	overlay := StartOverlay(context.Background(), NewEstimator(nil, schedules), items, at("07:55", time.Saturday))
	assert.Nil(t, overlay.Result())

	close(schedules.release)

	estimate, err := overlay.Wait(context.Background())
	require.NoError(t, err)
	require.NotNil(t, estimate)
	assert.Len(t, estimate.Times, 2)
	assert.Equal(t, 5, estimate.Minutes)
	assert.Same(t, estimate, overlay.Result())
}

func TestOverlayCancelPublishesNothing(t *testing.T) {
	schedules := &blockingSchedules{release: make(chan struct{})}
	items := append([]metro.PathItem{metro.Title{Line: 1, Direction: northbound}}, stationItems(1, "A", "B")...)

	overlay := StartOverlay(context.Background(), NewEstimator(nil, schedules), items, at("07:55", time.Saturday))
	overlay.Cancel()

	select {
	case <-overlay.Done():
	case <-time.After(time.Second):
		t.Fatal("overlay did not stop after cancel")
	}

	assert.Nil(t, overlay.Result())
	assert.ErrorIs(t, overlay.Err(), context.Canceled)
}

func TestOverlayWaitTimeout(t *testing.T) {
	schedules := &blockingSchedules{release: make(chan struct{})}
	items := append([]metro.PathItem{metro.Title{Line: 1, Direction: northbound}}, stationItems(1, "A")...)

	overlay := StartOverlay(context.Background(), NewEstimator(nil, schedules), items, at("07:55", time.Saturday))
	defer overlay.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	estimate, err := overlay.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, estimate)
}
