package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional
// .env file. A missing .env file is not an error.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// Config holds the configuration for the matching engine service.
type Config struct {
	Pair string `env:"PAIR,required"` // Traded market, e.g. SOL/USDC

	Engine   EngineConfig   `envPrefix:"ENGINE_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Snapshot SnapshotConfig `envPrefix:"SNAPSHOT_"`
}

// EngineConfig holds the per-market matching parameters. Prices and
// quantities are scaled fixed-point integers; the exponents describe how the
// surrounding system maps them back to display units, the engine itself
// never converts.
type EngineConfig struct {
	TickSize         int64 `env:"TICK_SIZE" envDefault:"1"`
	MinQuantity      int64 `env:"MIN_QUANTITY" envDefault:"1"`
	PriceExponent    int32 `env:"PRICE_EXPONENT" envDefault:"-6"`
	QuantityExponent int32 `env:"QUANTITY_EXPONENT" envDefault:"-6"`
	TapeCapacity     int   `env:"TAPE_CAPACITY" envDefault:"10000"`
}

// KafkaConfig holds the configuration for the order command consumer and
// the event publisher.
type KafkaConfig struct {
	Brokers    []string `env:"BROKER,required"`
	OrderTopic string   `env:"ORDER_TOPIC,required"`
	EventTopic string   `env:"EVENT_TOPIC,required"`
	GroupID    string   `env:"GROUP_ID" envDefault:"matching-engine"`
}

// RedisConfig holds the configuration for the Redis client used by the
// snapshot store.
type RedisConfig struct {
	Addrs    string `env:"ADDRESS,required"` // Comma-separated list of Redis addresses
	Password string `env:"PASSWORD" envDefault:""`
	Username string `env:"USERNAME" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// SnapshotConfig controls book snapshot cadence and the resting-order
// expiry sweep.
type SnapshotConfig struct {
	Interval            time.Duration `env:"INTERVAL" envDefault:"30s"`
	CommandDelta        int64         `env:"COMMAND_DELTA" envDefault:"1000"`
	ExpirySweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"1s"`
}
