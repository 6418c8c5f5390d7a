package config

import (
	"net"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Service-area boundary sources.
const (
	BoundarySourcePostGIS = "postgis"
	BoundarySourceGeoJSON = "geojson"
)

// Config holds the configuration settings for the tree-entry service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - HTTPPort: The port of the public API server.
// - HealthPort: The port of the monitoring server.
// - RegionName: The region named in out-of-area messages.
// - BoundarySource: Where service-area polygons come from (postgis, geojson).
// - BoundaryFile: GeoJSON boundary file, required for the geojson source.
// - ProviderType: The geocoding provider to use (google, nominatim).
// - Migrate: Whether to apply schema migrations on startup.
type Config struct {
	Env              string
	HTTPPort         int
	HealthPort       int
	RegionName       string
	BoundarySource   string
	BoundaryFile     string
	ProviderType     string
	APIKey           string // The API key for the geocoding provider (Google only).
	RateLimit        int    // Provider requests per second, zero for the provider default.
	ProviderRegion   string // Region bias / country filter for geocoding.
	AddrPrefix       string // Address prefix for more accurate geocoding
	GeocodeCacheSize int
	Migrate          bool
	Kafka            KafkaConfig
	Database         PostgresConfig
}

// KafkaConfig configures event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
	SSLMode  string
}

// URL returns the connection URL accepted by pgx and the migrate driver.
func (pc PostgresConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pc.User, pc.Password),
		Host:     net.JoinHostPort(pc.Host, pc.Port),
		Path:     "/" + pc.Name,
		RawQuery: url.Values{"sslmode": {pc.SSLMode}}.Encode(),
	}
	return u.String()
}

// MustLoad reads the configuration from the environment, after loading a
// .env file if one exists. Typed values go through viper's cast conversions;
// it panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	httpPort, err := cast.ToIntE(v.Get("TREEMAP_HTTP_PORT"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	healthPort, err := cast.ToIntE(v.Get("TREEMAP_HEALTH_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	rateLimit, err := cast.ToIntE(v.Get("TREEMAP_PROVIDER_RATE_LIMIT"))
	if err != nil || rateLimit < 0 {
		panic("failed to parse provider rate limit from configuration, must be a non-negative integer")
	}

	cacheSize, err := cast.ToIntE(v.Get("TREEMAP_GEOCODE_CACHE_SIZE"))
	if err != nil || cacheSize <= 0 {
		panic("failed to parse geocode cache size from configuration, must be a positive integer")
	}

	migrate, err := cast.ToBoolE(v.Get("TREEMAP_MIGRATE"))
	if err != nil {
		panic("failed to parse migrate flag from configuration, must be a boolean")
	}

	boundarySource := v.GetString("TREEMAP_BOUNDARY_SOURCE")
	boundaryFile := v.GetString("TREEMAP_BOUNDARY_FILE")
	switch boundarySource {
	case BoundarySourcePostGIS:
	case BoundarySourceGeoJSON:
		if boundaryFile == "" {
			panic("boundary file is required for the geojson boundary source")
		}
	default:
		panic("unsupported boundary source in configuration, must be postgis or geojson")
	}

	return &Config{
		Env:              v.GetString("TREEMAP_ENV"),
		HTTPPort:         httpPort,
		HealthPort:       healthPort,
		RegionName:       v.GetString("TREEMAP_REGION_NAME"),
		BoundarySource:   boundarySource,
		BoundaryFile:     boundaryFile,
		ProviderType:     v.GetString("TREEMAP_PROVIDER_TYPE"),
		APIKey:           v.GetString("TREEMAP_PROVIDER_KEY"),
		RateLimit:        rateLimit,
		ProviderRegion:   v.GetString("TREEMAP_PROVIDER_REGION"),
		AddrPrefix:       v.GetString("TREEMAP_ADDRESS_PREFIX"),
		GeocodeCacheSize: cacheSize,
		Migrate:          migrate,
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TREEMAP_ENV", "production")
	v.SetDefault("TREEMAP_HTTP_PORT", 8000)
	v.SetDefault("TREEMAP_HEALTH_PORT", 8080)
	v.SetDefault("TREEMAP_REGION_NAME", "Philadelphia")
	v.SetDefault("TREEMAP_BOUNDARY_SOURCE", BoundarySourcePostGIS)
	v.SetDefault("TREEMAP_PROVIDER_TYPE", "nominatim")
	v.SetDefault("TREEMAP_PROVIDER_RATE_LIMIT", 0)
	v.SetDefault("TREEMAP_PROVIDER_REGION", "us")
	v.SetDefault("TREEMAP_GEOCODE_CACHE_SIZE", 1024)
	v.SetDefault("TREEMAP_MIGRATE", false)
	v.SetDefault("KAFKA_TOPIC", "treemap.trees")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
