package config

import "time"

// JWTConfig содержит настройки подписи и времени жизни токенов.
// Секретный ключ не имеет значения по умолчанию: запуск без него
// является фатальной ошибкой конфигурации.
type JWTConfig struct {
	SecretKey      string `yaml:"secret_key" env:"AUTH_JWT_SECRET_KEY"`
	AccessTokenTTL string `yaml:"access_token_ttl" env:"AUTH_JWT_ACCESS_TOKEN_TTL" env-default:"60m"`
	BCryptCost     int    `yaml:"bcrypt_cost" env:"AUTH_JWT_BCRYPT_COST" env-default:"10"`
}

// GetAccessTokenTTL возвращает продолжительность времени жизни access токена.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return time.Hour
	}
	return duration
}
