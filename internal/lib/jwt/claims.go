package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает данные, хранящиеся в токене: subject и срок действия.
type Claims struct {
	jwt.RegisteredClaims
}

// Username возвращает имя пользователя, которому выдан токен.
func (c *Claims) Username() string {
	return c.Subject
}

// Issue создает токен для username, подписывая его секретным ключом.
func (j *MakerImpl) Issue(username string) (string, error) {
	const op = "jwt.Issue"
	now := j.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrSigningFailed, err)
	}
	return signed, nil
}

// Validate разбирает токен, проверяя подпись и срок действия за один шаг.
func (j *MakerImpl) Validate(tokenStr string) (*Claims, error) {
	const op = "jwt.Validate"
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, classify(err), err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformed)
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	default:
		return ErrMalformed
	}
}
