package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backend selectors.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	BaseURL        string        `env:"BACKEND_BASE_URL, default=http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,  default=10s"`
	Env            string        `env:"ENV,              default=development"`
	LogLevel       string        `env:"LOG_LEVEL,        default=info"`

	Pricing PricingConfig
	Storage StorageConfig
}

// PricingConfig holds the client-side checkout rates. The backend remains
// authoritative for the charged amount; these drive the pre-checkout totals
// display.
type PricingConfig struct {
	TaxRate     float64 `env:"TAX_RATE,     default=0.10"`
	DeliveryFee float64 `env:"DELIVERY_FEE, default=5.00"`
}

// StorageConfig selects and parameterises the persistence backend.
type StorageConfig struct {
	Backend  string `env:"STORAGE_BACKEND, default=file"`
	FilePath string `env:"STORAGE_FILE,    default=.storefront/state.json"`

	Redis RedisConfig
	Mongo MongoConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=funnfood_client"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
