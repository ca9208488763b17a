package arrivals

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/singleflight"
)

const prefetchConcurrency = 4

// ScheduleCache memoises line timetables. Concurrent first loads of a line share a
// single fetch and a timetable is only published once it has loaded successfully.
type ScheduleCache struct {
	source TimetableSource
	group  singleflight.Group

	mutex sync.RWMutex
	lines map[int]*metro.LineTimetable

	shared *cache.Cache[string]
}

func NewScheduleCache(source TimetableSource) *ScheduleCache {
	return &ScheduleCache{
		source: source,
		lines:  map[int]*metro.LineTimetable{},
	}
}

// WithRedis adds a shared tier so several processes reuse loaded timetables
func (c *ScheduleCache) WithRedis(client *redis.Client, expiration time.Duration) *ScheduleCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))
	c.shared = cache.New[string](redisStore)

	return c
}

func (c *ScheduleCache) GetSchedule(ctx context.Context, stationID string, line int, branch bool) ([]metro.GroupedScheduleInfo, error) {
	timetable, err := c.Load(ctx, line)
	if err != nil {
		return nil, err
	}

	groups := timetable.Lookup(stationID, branch)
	if len(groups) == 0 {
		return nil, fmt.Errorf("%s line %d: %w", stationID, line, ErrNoSchedule)
	}

	return groups, nil
}

// Load returns the timetable for a line, fetching it at most once across concurrent callers
func (c *ScheduleCache) Load(ctx context.Context, line int) (*metro.LineTimetable, error) {
	if timetable, exists := c.cached(line); exists {
		return timetable, nil
	}

	result := c.group.DoChan(strconv.Itoa(line), func() (interface{}, error) {
		if timetable, exists := c.cached(line); exists {
			return timetable, nil
		}

		return c.fetch(context.WithoutCancel(ctx), line)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case loaded := <-result:
		if loaded.Err != nil {
			return nil, loaded.Err
		}

		return loaded.Val.(*metro.LineTimetable), nil
	}
}

// Prefetch loads every listed line concurrently
func (c *ScheduleCache) Prefetch(ctx context.Context, lines []int) error {
	prefetchPool := pool.New().WithMaxGoroutines(prefetchConcurrency).WithContext(ctx)

	for _, line := range lines {
		line := line
		prefetchPool.Go(func(ctx context.Context) error {
			_, err := c.Load(ctx, line)
			return err
		})
	}

	return prefetchPool.Wait()
}

func (c *ScheduleCache) cached(line int) (*metro.LineTimetable, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	timetable, exists := c.lines[line]

	return timetable, exists
}

func (c *ScheduleCache) fetch(ctx context.Context, line int) (*metro.LineTimetable, error) {
	timetable := c.fromShared(ctx, line)

	if timetable == nil {
		var err error
		timetable, err = c.source.LineTimetable(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("load line %d timetable: %w", line, err)
		}

		c.toShared(ctx, timetable)
	}

	c.mutex.Lock()
	c.lines[line] = timetable
	c.mutex.Unlock()

	log.Debug().Int("line", line).Int("stations", len(timetable.Stations)).Msg("Loaded line timetable")

	return timetable, nil
}

// cachedTimetable is the JSON shape of a timetable in the shared tier
type cachedTimetable struct {
	Line     int                   `json:"line"`
	Stations []cachedStationGroups `json:"stations"`
}

type cachedStationGroups struct {
	StationID string                      `json:"station_id"`
	Branch    bool                        `json:"branch"`
	Groups    []metro.GroupedScheduleInfo `json:"groups"`
}

func sharedKey(line int) string {
	return fmt.Sprintf("metro/timetable/%d", line)
}

func (c *ScheduleCache) fromShared(ctx context.Context, line int) *metro.LineTimetable {
	if c.shared == nil {
		return nil
	}

	value, err := c.shared.Get(ctx, sharedKey(line))
	if err != nil || value == "" {
		return nil
	}

	var stored cachedTimetable
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		log.Warn().Err(err).Int("line", line).Msg("Discarding unreadable cached timetable")
		return nil
	}

	timetable := &metro.LineTimetable{
		Line:     stored.Line,
		Stations: make(map[metro.TimetableKey][]metro.GroupedScheduleInfo, len(stored.Stations)),
	}
	for _, station := range stored.Stations {
		timetable.Stations[metro.TimetableKey{StationID: station.StationID, Branch: station.Branch}] = station.Groups
	}

	return timetable
}

func (c *ScheduleCache) toShared(ctx context.Context, timetable *metro.LineTimetable) {
	if c.shared == nil {
		return
	}

	stored := cachedTimetable{Line: timetable.Line}
	for key, groups := range timetable.Stations {
		stored.Stations = append(stored.Stations, cachedStationGroups{
			StationID: key.StationID,
			Branch:    key.Branch,
			Groups:    groups,
		})
	}

	value, err := json.Marshal(stored)
	if err != nil {
		log.Error().Err(err).Int("line", timetable.Line).Msg("Failed to encode timetable")
		return
	}

	if err := c.shared.Set(ctx, sharedKey(timetable.Line), string(value)); err != nil {
		log.Error().Err(err).Int("line", timetable.Line).Msg("Failed to store timetable in redis")
	}
}
