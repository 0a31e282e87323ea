package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(WithBcryptCost(bcrypt.MinCost))

	t.Run("hash and verify roundtrip", func(t *testing.T) {
		t.Parallel()

		hash, err := hasher.Hash("s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		assert.True(t, hasher.Verify("s3cret-pass", hash))
		assert.False(t, hasher.Verify("wrong-pass", hash))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()

		first, err := hasher.Hash("same-input")
		require.NoError(t, err)
		second, err := hasher.Hash("same-input")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, hasher.Verify("same-input", first))
		assert.True(t, hasher.Verify("same-input", second))
	})

	t.Run("passwords beyond bcrypt input limit", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("correct horse battery staple ", 10)
		require.Greater(t, len(long), 72)

		hash, err := hasher.Hash(long)
		require.NoError(t, err)

		assert.True(t, hasher.Verify(long, hash))
		// A 73-byte truncation collision must not verify.
		assert.False(t, hasher.Verify(long[:73], hash))
	})

	t.Run("short passwords accepted", func(t *testing.T) {
		t.Parallel()

		hash, err := hasher.Hash("pw1")
		require.NoError(t, err)
		assert.True(t, hasher.Verify("pw1", hash))
	})

	t.Run("malformed hash fails verification", func(t *testing.T) {
		t.Parallel()

		assert.False(t, hasher.Verify("anything", "not-a-bcrypt-hash"))
		assert.False(t, hasher.Verify("anything", ""))
	})
}
