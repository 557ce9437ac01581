package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/motion-gateway/internal/lib/password"
)

func TestStorage_RegisterAndGet(t *testing.T) {
	s := New()

	require.NoError(t, s.RegisterUser("nico", "secret"))

	user, ok := s.GetUserByUsername("nico")
	require.True(t, ok)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "nico", user.Username)
	assert.NotEqual(t, "secret", user.PasswordHash)

	match, err := password.Matches(user.PasswordHash, "secret")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestStorage_GetUnknownUser(t *testing.T) {
	s := New()

	user, ok := s.GetUserByUsername("ghost")
	assert.False(t, ok)
	assert.Empty(t, user)
}

func TestStorage_RegisterEmptyUsername(t *testing.T) {
	s := New()

	err := s.RegisterUser("", "secret")
	assert.ErrorIs(t, err, ErrEmptyUsername)
	assert.Equal(t, 0, s.Len())
}

func TestStorage_RegisterOverwritesKeepsID(t *testing.T) {
	s := New()

	require.NoError(t, s.RegisterUser("nico", "first"))
	require.NoError(t, s.RegisterUser("anna", "other"))
	require.NoError(t, s.RegisterUser("nico", "second"))

	assert.Equal(t, 2, s.Len())

	user, ok := s.GetUserByUsername("nico")
	require.True(t, ok)
	assert.Equal(t, 1, user.ID)

	match, err := password.Matches(user.PasswordHash, "second")
	require.NoError(t, err)
	assert.True(t, match)

	anna, ok := s.GetUserByUsername("anna")
	require.True(t, ok)
	assert.Equal(t, 2, anna.ID)
}

func TestStorage_ConcurrentAccess(t *testing.T) {
	s := New()
	require.NoError(t, s.RegisterUser("nico", "secret"))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.RegisterUser(fmt.Sprintf("user%d", i), "pw"))
		}(i)
		go func() {
			defer wg.Done()
			_, ok := s.GetUserByUsername("nico")
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, s.Len())
}
