package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mosayeb-a/tehran-metro-sub000/data"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/util"
	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

const EnvironmentPrefix = "METRO_"

const defaultConfigFile = "config.yaml"

// Default is the configuration used when no file or environment overrides are present
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Source:          "file",
			StationsFile:    data.StationsFile,
			LinesFile:       data.LinesFile,
			SchedulePattern: data.SchedulePattern,
		},
		MongoDB: MongoDBConfig{
			Connection: "mongodb://localhost:27017/",
			Database:   "tehran-metro",
		},
		Planner: PlannerConfig{
			StationCost:    3,
			LineChangeCost: 6,
			TransferDelay:  "PT4M",
			RouteCacheSize: 1000,
			RouteCacheTTL:  "PT1H",
			OverlayWait:    "PT1S",
		},
		API: APIConfig{
			ListenAddress: ":8080",
		},
	}
}

// Load reads the YAML file at path, or METRO_CONFIG, or config.yaml when it exists,
// applies METRO_* environment overrides and validates the result
func Load(path string) (*Config, error) {
	env := util.GetEnvironmentVariables(EnvironmentPrefix)

	explicit := true
	if path == "" {
		path = env["METRO_CONFIG"]
	}
	if path == "" {
		path = defaultConfigFile
		explicit = false
	}

	config := Default()

	contents, err := os.ReadFile(path)
	if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(contents, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := config.applyEnvironment(env); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseDuration(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	return validate.Struct(c)
}

func (c *Config) applyEnvironment(env map[string]string) error {
	stringFields := map[string]*string{
		"METRO_DATA_SOURCE":            &c.Data.Source,
		"METRO_DATA_DIRECTORY":         &c.Data.Directory,
		"METRO_MONGODB_CONNECTION":     &c.MongoDB.Connection,
		"METRO_MONGODB_DATABASE":       &c.MongoDB.Database,
		"METRO_REDIS_ADDRESS":          &c.Redis.Address,
		"METRO_REDIS_PASSWORD":         &c.Redis.Password,
		"METRO_ELASTICSEARCH_ADDRESS":  &c.Elasticsearch.Address,
		"METRO_ELASTICSEARCH_USERNAME": &c.Elasticsearch.Username,
		"METRO_ELASTICSEARCH_PASSWORD": &c.Elasticsearch.Password,
		"METRO_NEO4J_URI":              &c.Neo4j.URI,
		"METRO_NEO4J_USERNAME":         &c.Neo4j.Username,
		"METRO_NEO4J_PASSWORD":         &c.Neo4j.Password,
		"METRO_TRANSFER_DELAY":         &c.Planner.TransferDelay,
		"METRO_ROUTE_CACHE_TTL":        &c.Planner.RouteCacheTTL,
		"METRO_OVERLAY_WAIT":           &c.Planner.OverlayWait,
		"METRO_LISTEN_ADDRESS":         &c.API.ListenAddress,
	}
	for key, target := range stringFields {
		if value := env[key]; value != "" {
			*target = value
		}
	}

	integerFields := map[string]*int{
		"METRO_REDIS_DATABASE":   &c.Redis.Database,
		"METRO_STATION_COST":     &c.Planner.StationCost,
		"METRO_LINE_CHANGE_COST": &c.Planner.LineChangeCost,
		"METRO_ROUTE_CACHE_SIZE": &c.Planner.RouteCacheSize,
	}
	for key, target := range integerFields {
		value := env[key]
		if value == "" {
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*target = n
	}

	return nil
}

// ParseDuration converts an ISO-8601 duration such as PT4M into a time.Duration
func ParseDuration(value string) (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	reference := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	return parsed.Shift(reference).Sub(reference), nil
}

func (p PlannerConfig) TransferDelayDuration() time.Duration {
	delay, _ := ParseDuration(p.TransferDelay)
	return delay
}

func (p PlannerConfig) RouteCacheDuration() time.Duration {
	ttl, _ := ParseDuration(p.RouteCacheTTL)
	return ttl
}

func (p PlannerConfig) OverlayWaitDuration() time.Duration {
	wait, _ := ParseDuration(p.OverlayWait)
	return wait
}
