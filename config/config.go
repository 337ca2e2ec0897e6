package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Queue    QueueConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr          string `env:"HTTP_ADDR" envDefault:":8080"`
	GinMode       string `env:"GIN_MODE" envDefault:"release"`
	ShortIDLength int    `env:"SHORT_ID_LENGTH" envDefault:"9"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
	// 啟動時套用 migrations
	Migrate bool `env:"DB_MIGRATE" envDefault:"true"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// DefaultJWTSecret 只適用於本機開發，release 模式下拒絕啟動
const DefaultJWTSecret = "change-me"

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me"`
	TokenTTL  time.Duration `env:"JWT_TTL" envDefault:"10h"`
}

// QueueConfig selects the notice queue backend: "redis" (stream) or "memory".
type QueueConfig struct {
	Driver     string `env:"QUEUE_DRIVER" envDefault:"redis"`
	BufferSize int    `env:"QUEUE_BUFFER" envDefault:"1000"`
	ConsumerID string `env:"QUEUE_CONSUMER_ID" envDefault:""`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

var AppConfig *Config

func LoadConfig() (*Config, error) {
	// .env 為選用，環境變數優先
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return AppConfig, nil
}

func (c *Config) Validate() error {
	if c.Server.GinMode == "release" && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value in release mode")
	}
	return nil
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		Migrate:  true,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server: ServerConfig{
			Addr:          ":0",
			GinMode:       "test",
			ShortIDLength: 9,
		},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Auth: AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
		Queue: QueueConfig{
			Driver:     "memory",
			BufferSize: 100,
		},
		Log: LogConfig{Level: "debug"},
	}
}
