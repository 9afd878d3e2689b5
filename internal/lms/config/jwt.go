package config

// JWTConfig содержит общий секрет проверки подписи access токенов.
// Секрет обязан совпадать с секретом сервиса аутентификации; запуск
// без него является фатальной ошибкой конфигурации.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key" env:"LMS_JWT_SECRET_KEY"`
}
