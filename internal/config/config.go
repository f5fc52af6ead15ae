package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type DBConfig struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxRetries  int
	AutoMigrate bool
	LockTimeout time.Duration
}

type RedisConfig struct {
	Addr            string
	BalanceCacheTTL time.Duration
	IdempotencyTTL  time.Duration
}

type KafkaConfig struct {
	Broker             string
	LeaveTopic         string
	ConsumerGroup      string
	OutboxPollInterval time.Duration
}

type LeaveConfig struct {
	BusyRetryDelay time.Duration
}

type RBACConfig struct {
	ModelPath string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type Config struct {
	Env       string
	Port      string
	JWTSecret string
	DB        DBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Leave     LeaveConfig
	RBAC      RBACConfig
	RateLimit RateLimitConfig
}

// Load reads .env (optional) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3000"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		DB: DBConfig{
			Driver:      getEnv("DB_DRIVER", "postgres"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "hris"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxRetries:  getEnvAsInt("DB_MAX_RETRIES", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
			LockTimeout: getEnvAsDuration("DB_LOCK_TIMEOUT", 3*time.Second),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", ""),
			BalanceCacheTTL: getEnvAsDuration("BALANCE_CACHE_TTL", 10*time.Minute),
			IdempotencyTTL:  getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		Kafka: KafkaConfig{
			Broker:             getEnv("KAFKA_BROKER", ""),
			LeaveTopic:         getEnv("KAFKA_LEAVE_TOPIC", "hr.leave.lifecycle.v1"),
			ConsumerGroup:      getEnv("KAFKA_CONSUMER_GROUP", "go-hris-leave-side-effects"),
			OutboxPollInterval: getEnvAsDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		},
		Leave: LeaveConfig{
			BusyRetryDelay: getEnvAsDuration("LEAVE_BUSY_RETRY_DELAY", 200*time.Millisecond),
		},
		RBAC: RBACConfig{
			ModelPath: getEnv("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LogFields describes the config without secrets.
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("env", c.Env),
		zap.String("port", c.Port),
		zap.String("db_driver", c.DB.Driver),
		zap.String("db_host", c.DB.Host),
		zap.String("db_name", c.DB.Name),
		zap.Duration("db_lock_timeout", c.DB.LockTimeout),
		zap.String("redis_addr", c.Redis.Addr),
		zap.String("kafka_broker", c.Kafka.Broker),
		zap.String("kafka_leave_topic", c.Kafka.LeaveTopic),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
