package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server binary needs from the environment so
// main stays lean.
type Config struct {
	Addr string

	// MediaDir is where uploaded photos and their thumbnails land.
	MediaDir string

	// JWTSigningKey enables bearer auth on the API when set. Empty key means
	// an unauthenticated single-user deployment, the default for a personal
	// install.
	JWTSigningKey string

	Redis RedisConfig
	Kafka KafkaConfig
}

// RedisConfig tunes the document store connection. An empty URL selects the
// in-memory store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig enables the optional entity-event publisher. Empty brokers
// disable it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds the config from environment variables with development
// defaults.
func FromEnv() Config {
	addr := os.Getenv("TRIPVAULT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	mediaDir := os.Getenv("TRIPVAULT_MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = "./media"
	}

	var brokers []string
	if raw := os.Getenv("TRIPVAULT_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("TRIPVAULT_KAFKA_TOPIC")
	if topic == "" {
		topic = "tripvault.entity-events"
	}

	return Config{
		Addr:          addr,
		MediaDir:      mediaDir,
		JWTSigningKey: os.Getenv("TRIPVAULT_JWT_SIGNING_KEY"),
		Redis: RedisConfig{
			URL:          os.Getenv("TRIPVAULT_REDIS_URL"),
			PoolSize:     envInt("TRIPVAULT_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("TRIPVAULT_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{Brokers: brokers, Topic: topic},
	}
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
