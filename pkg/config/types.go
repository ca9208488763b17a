package config

type Config struct {
	Data          DataConfig          `yaml:"data"`
	MongoDB       MongoDBConfig       `yaml:"mongodb"`
	Redis         RedisConfig         `yaml:"redis"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Neo4j         Neo4jConfig         `yaml:"neo4j"`
	Planner       PlannerConfig       `yaml:"planner"`
	API           APIConfig           `yaml:"api"`
}

// DataConfig selects where stations, lines and timetables are read from.
// An empty Directory with the file source means the bundled dataset.
type DataConfig struct {
	Source          string `yaml:"source" validate:"oneof=file mongodb"`
	Directory       string `yaml:"directory"`
	StationsFile    string `yaml:"stations_file" validate:"required"`
	LinesFile       string `yaml:"lines_file" validate:"required"`
	SchedulePattern string `yaml:"schedule_pattern" validate:"required"`
}

type MongoDBConfig struct {
	Connection string `yaml:"connection" validate:"required"`
	Database   string `yaml:"database" validate:"required"`
}

// RedisConfig is optional, an empty address disables the shared timetable cache
type RedisConfig struct {
	Address  string `yaml:"address" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	Database int    `yaml:"database" validate:"gte=0"`
}

type ElasticsearchConfig struct {
	Address  string `yaml:"address" validate:"omitempty,url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Neo4jConfig struct {
	URI      string `yaml:"uri" validate:"omitempty,uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// PlannerConfig durations are whole-unit ISO-8601, eg. PT4M
type PlannerConfig struct {
	StationCost    int    `yaml:"station_cost" validate:"gte=0"`
	LineChangeCost int    `yaml:"line_change_cost" validate:"gte=0"`
	TransferDelay  string `yaml:"transfer_delay" validate:"iso8601"`
	RouteCacheSize int    `yaml:"route_cache_size" validate:"gt=0"`
	RouteCacheTTL  string `yaml:"route_cache_ttl" validate:"iso8601"`
	OverlayWait    string `yaml:"overlay_wait" validate:"iso8601"`
}

type APIConfig struct {
	ListenAddress string `yaml:"listen_address" validate:"required"`
}
