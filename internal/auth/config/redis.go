package config

import (
	"time"

	"projectathena/pkg/db/redis"
)

// RedisConfig представляет конфигурацию хранилища refresh токенов.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"AUTH_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"AUTH_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"AUTH_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"AUTH_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"AUTH_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"AUTH_REDIS_TIMEOUT" env-default:"5s"`

	// Предел жизни refresh токена и скользящее окно бездействия.
	RefreshAbsoluteTTL time.Duration `yaml:"refresh_absolute_ttl" env:"AUTH_REFRESH_ABSOLUTE_TTL" env-default:"168h"`
	RefreshSlidingTTL  time.Duration `yaml:"refresh_sliding_ttl" env:"AUTH_REFRESH_SLIDING_TTL" env-default:"24h"`
}

// GetClientConfig возвращает настройки для общего клиента Redis.
func (c *RedisConfig) GetClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
