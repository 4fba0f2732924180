package redis

import (
	"context"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

var NilType = _redis.Nil

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	PoolSize int
	// Addr overrides Host and Port when set.
	Addr string
}

type Client struct {
	Client *_redis.Client
	ctx    context.Context
	cancel context.CancelFunc
	config *Config
}

// IRedis is the subset of redis the repositories depend on.
type IRedis interface {
	Set(key string, value any, expiration time.Duration) error
	Get(key string) (string, error)
	Del(key string) error
	Expire(key string, expiration time.Duration) error
	Ping() error
	Close() error
}
