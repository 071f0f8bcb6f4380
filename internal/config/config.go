package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Catalog    CatalogConfig
	Engine     EngineConfig
	Cache      CacheConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string

	// EngineMode is "inprocess" or "subprocess"
	EngineMode        string
	EngineBinary      string
	SubprocessTimeout time.Duration
}

// CatalogConfig selects where the read-only catalog snapshot comes from
type CatalogConfig struct {
	Source     string // csv, postgres or sqlite3
	Dir        string // directory with restaurants.csv, hotels.csv, vehicles.csv
	SQLitePath string
}

// EngineConfig holds result sizing and the qualitative thresholds
type EngineConfig struct {
	MaxResults      int
	MinResults      int
	MaxAlternatives int
	VocabularyFile  string
	Thresholds      Thresholds
}

// Thresholds maps qualitative terms ("cheap", "luxury", "best") to numbers.
// Prices are per category: restaurant price_range_to/from, hotel price per
// night, vehicle price per day.
type Thresholds struct {
	RestaurantCheapMax    float64
	RestaurantLuxuryMin   float64
	HotelCheapMax         float64
	HotelLuxuryMin        float64
	VehicleCheapMax       float64
	VehicleLuxuryMin      float64
	BestRatingMin         float64
	WorstRatingMax        float64
	PriceQualityRatingMin float64
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	Driver        string // none, memory or redis
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// DefaultThresholds returns the built-in qualitative thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		RestaurantCheapMax:    800,
		RestaurantLuxuryMin:   2000,
		HotelCheapMax:         3000,
		HotelLuxuryMin:        10000,
		VehicleCheapMax:       1500,
		VehicleLuxuryMin:      5000,
		BestRatingMin:         4.0,
		WorstRatingMax:        3.0,
		PriceQualityRatingMin: 3.5,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	def := DefaultThresholds()
	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "travel_catalog"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 5),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Server: ServerConfig{
			Port:              getEnvAsInt("SERVER_PORT", 8080),
			Host:              getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:           getEnv("GIN_MODE", "release"),
			AllowedOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "*"),
			EngineMode:        getEnv("ENGINE_MODE", "inprocess"),
			EngineBinary:      getEnv("ENGINE_BINARY", "recommend"),
			SubprocessTimeout: time.Duration(getEnvAsInt("ENGINE_SUBPROCESS_TIMEOUT", 10)) * time.Second,
		},
		Catalog: CatalogConfig{
			Source:     getEnv("CATALOG_SOURCE", "csv"),
			Dir:        getEnv("CATALOG_DIR", "data"),
			SQLitePath: getEnv("CATALOG_SQLITE_PATH", "data/catalog.db"),
		},
		Engine: EngineConfig{
			MaxResults:      getEnvAsInt("ENGINE_MAX_RESULTS", 5),
			MinResults:      getEnvAsInt("ENGINE_MIN_RESULTS", 1),
			MaxAlternatives: getEnvAsInt("ENGINE_MAX_ALTERNATIVES", 5),
			VocabularyFile:  getEnv("VOCABULARY_FILE", ""),
			Thresholds: Thresholds{
				RestaurantCheapMax:    getEnvAsFloat("THRESHOLD_RESTAURANT_CHEAP_MAX", def.RestaurantCheapMax),
				RestaurantLuxuryMin:   getEnvAsFloat("THRESHOLD_RESTAURANT_LUXURY_MIN", def.RestaurantLuxuryMin),
				HotelCheapMax:         getEnvAsFloat("THRESHOLD_HOTEL_CHEAP_MAX", def.HotelCheapMax),
				HotelLuxuryMin:        getEnvAsFloat("THRESHOLD_HOTEL_LUXURY_MIN", def.HotelLuxuryMin),
				VehicleCheapMax:       getEnvAsFloat("THRESHOLD_VEHICLE_CHEAP_MAX", def.VehicleCheapMax),
				VehicleLuxuryMin:      getEnvAsFloat("THRESHOLD_VEHICLE_LUXURY_MIN", def.VehicleLuxuryMin),
				BestRatingMin:         getEnvAsFloat("THRESHOLD_BEST_RATING_MIN", def.BestRatingMin),
				WorstRatingMax:        getEnvAsFloat("THRESHOLD_WORST_RATING_MAX", def.WorstRatingMax),
				PriceQualityRatingMin: getEnvAsFloat("THRESHOLD_MIX_RATING_MIN", def.PriceQualityRatingMin),
			},
		},
		Cache: CacheConfig{
			Driver:        getEnv("CACHE_DRIVER", "none"),
			TTL:           time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 300)) * time.Second,
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			RedisPrefix:   getEnv("REDIS_PREFIX", "travelrec:"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot work with
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "csv", "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported CATALOG_SOURCE %q", c.Catalog.Source)
	}
	switch c.Server.EngineMode {
	case "inprocess", "subprocess":
	default:
		return fmt.Errorf("unsupported ENGINE_MODE %q", c.Server.EngineMode)
	}
	switch c.Cache.Driver {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("unsupported CACHE_DRIVER %q", c.Cache.Driver)
	}
	if c.Engine.MaxResults <= 0 {
		return fmt.Errorf("ENGINE_MAX_RESULTS must be positive, got %d", c.Engine.MaxResults)
	}
	if c.Engine.MinResults < 0 || c.Engine.MaxAlternatives < 0 {
		return fmt.Errorf("ENGINE_MIN_RESULTS and ENGINE_MAX_ALTERNATIVES must not be negative")
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Warn().Str("key", key).Float64("default", defaultValue).Msg("invalid float value, using default")
		return defaultValue
	}
	return value
}
