package repositories

import (
	"context"
)

// RefreshTokenStore определяет интерфейс хранилища refresh токенов.
// Инвариант хранилища: для каждого пользователя существует не более одного
// действующего refresh токена; Save перезаписывает предыдущий.
type RefreshTokenStore interface {
	// Save сохраняет токен в единственный слот пользователя, перезаписывая
	// существующий, с абсолютным и скользящим сроком действия.
	Save(ctx context.Context, userID, token string) error

	// Validate сообщает, совпадает ли предъявленный токен с непросроченным
	// содержимым слота. Успешная проверка продлевает скользящее окно,
	// но не дальше абсолютного срока.
	Validate(ctx context.Context, userID, token string) (bool, error)

	// Rotate атомарно заменяет old на next, только если слот все еще
	// содержит old. Возвращает false, если слот пуст, просрочен или
	// содержит другое значение.
	Rotate(ctx context.Context, userID, old, next string) (bool, error)

	// Revoke безусловно освобождает слот; отсутствие слота не является
	// ошибкой.
	Revoke(ctx context.Context, userID string) error
}
