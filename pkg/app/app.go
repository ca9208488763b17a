package app

import (
	"context"
	"time"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/arrivals"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/config"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/dataprovider"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/elastic_client"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/journeyplanner"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/network"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/planner"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/redis_client"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// timetableExpiration bounds how long a timetable stays in the shared Redis tier
const timetableExpiration = 24 * time.Hour

// Services holds everything a command needs, built once from configuration
type Services struct {
	Config    *config.Config
	Provider  dataprovider.Provider
	Network   *network.Network
	Schedules *arrivals.ScheduleCache
	Planner   *journeyplanner.Planner

	Redis   *redis.Client
	Elastic *elastic_client.Client

	closers []func()
}

// Setup loads configuration and the network, then connects the optional Redis
// and Elasticsearch tiers. A network that cannot be loaded is an error.
func Setup(ctx context.Context, configPath string) (*Services, error) {
	appConfig, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	return SetupWithConfig(ctx, appConfig)
}

func SetupWithConfig(ctx context.Context, appConfig *config.Config) (*Services, error) {
	services := &Services{Config: appConfig}

	provider, closeProvider, err := dataprovider.Open(ctx, appConfig)
	if err != nil {
		return nil, err
	}
	services.Provider = provider
	services.closers = append(services.closers, closeProvider)

	services.Network, err = provider.LoadNetwork(ctx)
	if err != nil {
		services.Close()
		return nil, err
	}

	services.Schedules = arrivals.NewScheduleCache(provider)

	services.Redis, err = redis_client.Connect(ctx, appConfig.Redis)
	if err != nil {
		services.Close()
		return nil, err
	}
	if services.Redis != nil {
		services.Schedules.WithRedis(services.Redis, timetableExpiration)
		services.closers = append(services.closers, func() {
			_ = services.Redis.Close()
		})
	}

	services.Elastic, err = elastic_client.Connect(appConfig.Elasticsearch)
	if err != nil {
		services.Close()
		return nil, err
	}
	services.closers = append(services.closers, func() {
		if err := services.Elastic.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to flush Elasticsearch indexer")
		}
	})

	var events journeyplanner.EventSink
	if services.Elastic != nil {
		events = services.Elastic
	}

	services.Planner = journeyplanner.New(services.Network, services.Schedules, events, journeyplanner.Options{
		Solver: planner.Options{
			StationCost:    appConfig.Planner.StationCost,
			LineChangeCost: appConfig.Planner.LineChangeCost,
		},
		TransferDelay:  appConfig.Planner.TransferDelayDuration(),
		RouteCacheSize: appConfig.Planner.RouteCacheSize,
		RouteCacheTTL:  appConfig.Planner.RouteCacheDuration(),
	})

	return services, nil
}

// Close releases connections in reverse order of creation
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
