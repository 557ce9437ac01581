// Package services содержит логику проверки учетных данных и сессионных токенов.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/motion-gateway/internal/lib/jwt"
	"github.com/magabrotheeeer/motion-gateway/internal/lib/password"
	"github.com/magabrotheeeer/motion-gateway/internal/models"
)

// BearerPrefix схема, с которой должен начинаться заголовок Authorization.
const BearerPrefix = "Bearer "

// Ошибки аутентификации. Все они отдаются клиенту как 401 без подробностей;
// ErrVerification означает внутреннюю ошибку проверки хэша.
var (
	ErrMissingOrMalformedHeader = errors.New("missing or malformed authorization header")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrInvalidToken             = errors.New("invalid token")
	ErrUserNotFound             = errors.New("user not found")
	ErrVerification             = errors.New("password verification failed")
)

// UserRepository описывает чтение пользователей из хранилища.
type UserRepository interface {
	GetUserByUsername(username string) (models.User, bool)
}

// AuthService проверяет учетные данные, выпускает и принимает токены.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и выпускает токен. Неизвестный пользователь
// и неверный пароль дают одну и ту же ошибку ErrInvalidCredentials.
func (s *AuthService) Login(username, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	user, ok := s.users.GetUserByUsername(username)
	if !ok {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	match, err := password.Matches(user.PasswordHash, rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrVerification, err)
	}
	if !match {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Authenticate принимает сырое значение заголовка Authorization и возвращает
// пользователя, которому выдан токен.
func (s *AuthService) Authenticate(authHeader string) (models.User, error) {
	const op = "services.auth.Authenticate"

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrMissingOrMalformedHeader)
	}
	tokenStr := strings.TrimPrefix(authHeader, BearerPrefix)

	claims, err := s.jwtMaker.Validate(tokenStr)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	user, ok := s.users.GetUserByUsername(claims.Username())
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return user, nil
}

// IsUnauthorized сообщает, относится ли ошибка к отказу в доступе.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrMissingOrMalformedHeader) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUserNotFound)
}
