// Package memory реализует хранилище учетных записей в памяти процесса.
//
// Записи создаются при старте сервиса из конфигурации; все обращения к карте
// пользователей проходят под одним мьютексом.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/motion-gateway/internal/lib/password"
	"github.com/magabrotheeeer/motion-gateway/internal/models"
)

// ErrEmptyUsername возвращается при попытке зарегистрировать пользователя без имени.
var ErrEmptyUsername = errors.New("username is empty")

// Storage хранит пользователей по username.
type Storage struct {
	mu     sync.Mutex
	users  map[string]models.User
	nextID int
}

// New создает пустое хранилище.
func New() *Storage {
	return &Storage{
		users:  make(map[string]models.User),
		nextID: 1,
	}
}

// RegisterUser хэширует пароль и сохраняет пользователя. Повторная регистрация того же
// имени перезаписывает хэш, сохраняя идентификатор.
func (s *Storage) RegisterUser(username, rawPassword string) error {
	const op = "storage.memory.RegisterUser"
	if username == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyUsername)
	}

	// bcrypt выполняется до захвата мьютекса.
	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		user = models.User{ID: s.nextID, Username: username}
		s.nextID++
	}
	user.PasswordHash = hash
	s.users[username] = user
	return nil
}

// GetUserByUsername возвращает копию пользователя или false, если его нет.
func (s *Storage) GetUserByUsername(username string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	return user, ok
}

// Len возвращает количество зарегистрированных пользователей.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
