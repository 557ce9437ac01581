// Package models содержит доменные модели сервиса: учетную запись пользователя
// и событие измерения, принимаемое на запись.
package models

// User представляет учетную запись, созданную при старте сервиса.
type User struct {
	ID           int    // Порядковый идентификатор, начиная с 1
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // bcrypt-хэш пароля
}
