package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything main needs to wire the process. Optional
// backends degrade gracefully: an empty PostgresDSN selects the in-memory
// stores, an empty RedisURL keeps the realtime hub in-process only, and empty
// KafkaBrokers disables the action log mirror.
type Config struct {
	Addr           string
	JWTSigningKey  string
	JWTIssuer      string
	AccessTokenTTL time.Duration

	PostgresDSN  string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("TRECCO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "trecco-api"
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("ACCESS_TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			tokenTTL = parsed
		}
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("KAFKA_ACTION_LOG_TOPIC")
	if topic == "" {
		topic = "trecco.board-actions"
	}

	return Config{
		Addr:           addr,
		JWTSigningKey:  jwtSigningKey,
		JWTIssuer:      issuer,
		AccessTokenTTL: tokenTTL,
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		RedisURL:       os.Getenv("REDIS_URL"),
		KafkaBrokers:   brokers,
		KafkaTopic:     topic,
	}
}
