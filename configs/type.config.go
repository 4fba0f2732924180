package config

import (
	"context"
	"sync"

	"transfer-storefront/internal/common/enum"
	database "transfer-storefront/internal/pkg/db"
	"transfer-storefront/internal/pkg/helper"
	"transfer-storefront/internal/pkg/rabbitmq"
	"transfer-storefront/internal/pkg/redis"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv        enum.EnvEnum        `env:"APP_ENV" envDefault:"development"`
	AppPort       int                 `env:"APP_PORT" envDefault:"8080"`
	AppBaseURL    string              `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	FrontendURL   string              `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	CorsOrigins   string              `env:"CORS_ORIGINS" envDefault:"*"`
	RedisHost     string              `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int                 `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string              `env:"REDIS_USER" envDefault:"default"`
	RedisPass     string              `env:"REDIS_PASS" envDefault:""`
	RedisPoolSize int                 `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RabbitHost    string              `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort    int                 `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser    string              `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass    string              `env:"RABBIT_PASS" envDefault:"guest"`
	DBDriver      database.DriverEnum `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost        string              `env:"DB_HOST" envDefault:"localhost"`
	DBPort        int                 `env:"DB_PORT" envDefault:"5432"`
	DBUser        string              `env:"DB_USER" envDefault:"postgres"`
	DBPass        string              `env:"DB_PASS" envDefault:""`
	DBName        string              `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode     string              `env:"DB_SSL_MODE" envDefault:"disable"`
	DBCache       bool                `env:"DB_CACHE" envDefault:"true"`
	// DBCacheSeconds of 0 keeps the query cache in process memory.
	DBCacheSeconds int    `env:"DB_CACHE_SECONDS" envDefault:"30"`
	JWTSecret      string `env:"JWT_SECRET"`

	PayPalClientID     string `env:"PAYPAL_CLIENT_ID" envDefault:""`
	PayPalClientSecret string `env:"PAYPAL_CLIENT_SECRET" envDefault:""`
	PayPalEnvironment  string `env:"PAYPAL_ENVIRONMENT" envDefault:"sandbox"`
	MonCashClientID    string `env:"MONCASH_CLIENT_ID" envDefault:""`
	MonCashSecret      string `env:"MONCASH_CLIENT_SECRET" envDefault:""`
	MonCashEnvironment string `env:"MONCASH_ENVIRONMENT" envDefault:"sandbox"`

	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:""`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:""`
	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSBucketName      string `env:"AWS_BUCKET_NAME" envDefault:""`
	AWSEndpoint        string `env:"AWS_ENDPOINT" envDefault:""`

	OtelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	StockWindowMinutes    int    `env:"STOCK_WINDOW_MINUTES" envDefault:"120"`
	StockCooldownMinutes  int    `env:"STOCK_COOLDOWN_MINUTES" envDefault:"30"`
	StockRefillPercent    int    `env:"STOCK_REFILL_PERCENT" envDefault:"60"`
	TickerIntervalSeconds int    `env:"TICKER_INTERVAL_SECONDS" envDefault:"4"`
	TransferMaxAmount     string `env:"TRANSFER_MAX_AMOUNT" envDefault:"5000"`
	TransferCurrency      string `env:"TRANSFER_CURRENCY" envDefault:"USD"`
}

// Origins splits CORS_ORIGINS on commas.
func (c *Config) Origins() []string {
	return helper.ParseCommaSeperatedString(c.CorsOrigins)
}

func (c *Config) MaxAmount() (decimal.Decimal, error) {
	return decimal.NewFromString(c.TransferMaxAmount)
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx    *context.Context
	Cancel context.CancelFunc
	Wg     *sync.WaitGroup
	Env    *Config
	Db     *database.Database
	Rds    *redis.Client
	Rb     *rabbitmq.ConnectionManager
}
