// Package jwt реализует выпуск и проверку подписанных сессионных токенов.
//
// Токен подписывается HMAC-SHA256 секретом процесса, содержит subject (имя пользователя)
// и срок действия, всегда равный TokenTTL с момента выпуска. На сервере токены не хранятся:
// валидность определяется только подписью и сроком.
package jwt

import (
	"errors"
	"time"
)

// TokenTTL время жизни сессионного токена.
const TokenTTL = 24 * time.Hour

// Ошибки проверки и выпуска токена. Наружу они отдаются единообразно как "unauthorized",
// различие нужно только для логов и тестов.
var (
	ErrMalformed      = errors.New("token is malformed")
	ErrExpired        = errors.New("token is expired")
	ErrBadSignature   = errors.New("token signature is invalid")
	ErrSigningFailed  = errors.New("token signing failed")
	ErrEmptySecretKey = errors.New("secret key is empty")
)

// Maker описывает интерфейс для выпуска и проверки токенов.
type Maker interface {
	Issue(username string) (string, error)
	Validate(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на основе секретного ключа.
type MakerImpl struct {
	secretKey []byte           // Секретный ключ для подписи токенов.
	now       func() time.Time // Источник времени для выпуска и проверки.
}

// Option настраивает MakerImpl.
type Option func(*MakerImpl)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(m *MakerImpl) {
		m.now = now
	}
}

// NewJWTMaker создаёт MakerImpl. Пустой секрет недопустим.
func NewJWTMaker(secretKey string, opts ...Option) (*MakerImpl, error) {
	if secretKey == "" {
		return nil, ErrEmptySecretKey
	}
	m := &MakerImpl{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}
