// Package redis содержит реализацию хранилища refresh токенов поверх Redis.
package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"projectathena/internal/auth/ports/repositories"
	"projectathena/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodSave     = "Save"
	LogMethodValidate = "Validate"
	LogMethodRotate   = "Rotate"
	LogMethodRevoke   = "Revoke"

	ErrorFailedToSave     = "failed to save refresh token"
	ErrorFailedToValidate = "failed to validate refresh token"
	ErrorFailedToRotate   = "failed to rotate refresh token"
	ErrorFailedToRevoke   = "failed to revoke refresh token"
)

// keyPrefix - префикс ключа слота refresh токена.
const keyPrefix = "athena:refresh:"

// Поля hash-слота.
const (
	fieldToken    = "token"
	fieldDeadline = "deadline"
)

// rotateScript атомарно заменяет токен в слоте, только если слот все еще
// содержит предъявленное старое значение (compare-and-swap). Закрывает
// гонку двух конкурентных обновлений: проигравший получает 0 вместо
// молчаливой перезаписи.
var rotateScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'token') == ARGV[1] then
    redis.call('HSET', KEYS[1], 'token', ARGV[2], 'deadline', ARGV[3])
    redis.call('PEXPIRE', KEYS[1], ARGV[4])
    return 1
end
return 0
`)

// TokenStore реализует repositories.RefreshTokenStore поверх Redis.
// Один hash-ключ на пользователя: единственный слот с абсолютным сроком
// (поле deadline) и скользящим окном (TTL ключа). Истечение пассивное -
// за счет TTL, без активной очистки.
type TokenStore struct {
	client      *redis.Client
	absoluteTTL time.Duration
	slidingTTL  time.Duration
}

// NewTokenStore создает новое хранилище refresh токенов.
func NewTokenStore(client *redis.Client, absoluteTTL, slidingTTL time.Duration) repositories.RefreshTokenStore {
	return &TokenStore{
		client:      client,
		absoluteTTL: absoluteTTL,
		slidingTTL:  slidingTTL,
	}
}

func slotKey(userID string) string {
	return keyPrefix + userID
}

// initialTTL возвращает TTL нового слота: скользящее окно, ограниченное
// абсолютным сроком.
func (s *TokenStore) initialTTL() time.Duration {
	if s.slidingTTL < s.absoluteTTL {
		return s.slidingTTL
	}
	return s.absoluteTTL
}

// Save сохраняет токен в слот пользователя, перезаписывая существующий.
func (s *TokenStore) Save(ctx context.Context, userID, token string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSave), zap.String("userID", userID))

	key := slotKey(userID)
	deadline := time.Now().Add(s.absoluteTTL).UnixMilli()

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fieldToken, token, fieldDeadline, deadline)
	pipe.PExpire(ctx, key, s.initialTTL())

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}

	return nil
}

// Validate сообщает, совпадает ли предъявленный токен с содержимым слота.
// Успешная проверка продлевает скользящее окно, но не дальше абсолютного
// срока.
func (s *TokenStore) Validate(ctx context.Context, userID, token string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodValidate), zap.String("userID", userID))

	key := slotKey(userID)

	values, err := s.client.HMGet(ctx, key, fieldToken, fieldDeadline).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		log.Error(ctx, ErrorFailedToValidate, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToValidate, err)
	}

	stored, ok := values[0].(string)
	if !ok || stored == "" {
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return false, nil
	}

	remaining := s.remainingUntilDeadline(values[1])
	if remaining <= 0 {
		return false, nil
	}

	extension := s.slidingTTL
	if remaining < extension {
		extension = remaining
	}
	if err := s.client.PExpire(ctx, key, extension).Err(); err != nil {
		log.Error(ctx, ErrorFailedToValidate, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToValidate, err)
	}

	return true, nil
}

// Rotate атомарно заменяет old на next, только если слот все еще содержит
// old. Новый токен получает свежий абсолютный срок.
func (s *TokenStore) Rotate(ctx context.Context, userID, old, next string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRotate), zap.String("userID", userID))

	key := slotKey(userID)
	deadline := time.Now().Add(s.absoluteTTL).UnixMilli()

	result, err := rotateScript.Run(ctx, s.client, []string{key},
		old, next, deadline, s.initialTTL().Milliseconds()).Int()
	if err != nil {
		log.Error(ctx, ErrorFailedToRotate, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToRotate, err)
	}

	return result == 1, nil
}

// Revoke безусловно освобождает слот пользователя. Идемпотентен.
func (s *TokenStore) Revoke(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevoke), zap.String("userID", userID))

	if err := s.client.Del(ctx, slotKey(userID)).Err(); err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	return nil
}

// remainingUntilDeadline вычисляет время до абсолютного срока слота.
func (s *TokenStore) remainingUntilDeadline(raw interface{}) time.Duration {
	str, ok := raw.(string)
	if !ok {
		return 0
	}
	deadline, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0
	}
	return time.Until(time.UnixMilli(deadline))
}
