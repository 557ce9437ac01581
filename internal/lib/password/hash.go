// Package password реализует функции для хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля с фиксированной стоимостью.
// Matches отличает несовпадение пароля от внутренней ошибки проверки хеша.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost стоимость bcrypt, одинаковая для всех хешей сервиса.
const Cost = bcrypt.DefaultCost

// MaxLength предел bcrypt: байты пароля сверх него не участвуют в хеше.
const MaxLength = 72

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// Matches сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает (false, nil), если пароль не подходит или длиннее MaxLength байт,
// и ошибку только тогда, когда сам хэш не удалось разобрать.
func Matches(originalHash, externalPassword string) (bool, error) {
	const op = "password.Matches"
	if len(externalPassword) > MaxLength {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", op, err)
	}
}
