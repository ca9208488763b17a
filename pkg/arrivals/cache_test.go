package arrivals

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls   atomic.Int32
	delay   time.Duration
	failing atomic.Bool
}

func (s *countingSource) LineTimetable(ctx context.Context, line int) (*metro.LineTimetable, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)

	if s.failing.Load() {
		return nil, errors.New("source unavailable")
	}

	return metro.GroupScheduleEntries(line, []metro.ScheduleEntry{
		{StationID: "Shoush", Line: line, Destination: northbound, Type: metro.ScheduleTypeAllDay, Time: 0.5},
		{StationID: "Shoush", Line: line, Destination: northbound, Type: metro.ScheduleTypeAllDay, Time: 0.25},
		{StationID: "Vavan", Line: line, Branch: true, Destination: northbound, Type: metro.ScheduleTypeAllDay, Time: 0.3},
	}), nil
}

func TestScheduleCacheCoalescesConcurrentLoads(t *testing.T) {
	source := &countingSource{delay: 50 * time.Millisecond}
	scheduleCache := NewScheduleCache(source)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			timetable, err := scheduleCache.Load(context.Background(), 1)
			assert.NoError(t, err)
			assert.Equal(t, 1, timetable.Line)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), source.calls.Load())

	_, err := scheduleCache.Load(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int32(2), source.calls.Load())
}

func TestScheduleCacheDoesNotPublishFailures(t *testing.T) {
	source := &countingSource{}
	source.failing.Store(true)
	scheduleCache := NewScheduleCache(source)

	_, err := scheduleCache.Load(context.Background(), 1)
	require.Error(t, err)

	source.failing.Store(false)
	timetable, err := scheduleCache.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, timetable)
	assert.Equal(t, int32(2), source.calls.Load())
}

func TestScheduleCacheGetSchedule(t *testing.T) {
	scheduleCache := NewScheduleCache(&countingSource{})

	groups, err := scheduleCache.GetSchedule(context.Background(), "Shoush", 1, false)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []float64{0.25, 0.5}, groups[0].Times[metro.ScheduleTypeAllDay])

	groups, err = scheduleCache.GetSchedule(context.Background(), "Vavan", 1, true)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	_, err = scheduleCache.GetSchedule(context.Background(), "Vavan", 1, false)
	assert.ErrorIs(t, err, ErrNoSchedule)
}

func TestScheduleCacheCancelledWait(t *testing.T) {
	scheduleCache := NewScheduleCache(&countingSource{delay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := scheduleCache.Load(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScheduleCachePrefetch(t *testing.T) {
	source := &countingSource{delay: 10 * time.Millisecond}
	scheduleCache := NewScheduleCache(source)

	require.NoError(t, scheduleCache.Prefetch(context.Background(), []int{1, 4, 5}))
	assert.Equal(t, int32(3), source.calls.Load())

	_, err := scheduleCache.GetSchedule(context.Background(), "Shoush", 5, false)
	require.NoError(t, err)
	assert.Equal(t, int32(3), source.calls.Load())
}

func TestScheduleCacheSharedRedisTier(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	first := NewScheduleCache(&countingSource{}).WithRedis(client, time.Hour)
	_, err := first.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, server.Exists("metro/timetable/1"))

	offline := &countingSource{}
	offline.failing.Store(true)
	second := NewScheduleCache(offline).WithRedis(client, time.Hour)

	groups, err := second.GetSchedule(context.Background(), "Shoush", 1, false)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, northbound, groups[0].Destination)
	assert.Equal(t, []float64{0.25, 0.5}, groups[0].Times[metro.ScheduleTypeAllDay])
	assert.Equal(t, int32(0), offline.calls.Load())
}
