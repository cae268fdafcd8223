package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces a PHC-format hash", func(t *testing.T) {
		hash, err := HashPassword("hunter2")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	})

	t.Run("salts are unique", func(t *testing.T) {
		a, err := HashPassword("hunter2")
		require.NoError(t, err)
		b, err := HashPassword("hunter2")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("hunter2", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		require.Error(t, VerifyPassword("wrong", hash))
	})

	t.Run("garbage hash", func(t *testing.T) {
		require.Error(t, VerifyPassword("hunter2", "not-a-hash"))
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		require.Error(t, VerifyPassword("hunter2", "$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"))
	})
}
