package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2id_Hash(t *testing.T) {
	h := NewArgon2id()

	t.Run("produces PHC formatted digest", func(t *testing.T) {
		digest, err := h.Hash("password123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
	})

	t.Run("same password produces different digests", func(t *testing.T) {
		d1, err := h.Hash("samepassword")
		require.NoError(t, err)
		d2, err := h.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, d1, d2)

		assert.True(t, h.Verify("samepassword", d1))
		assert.True(t, h.Verify("samepassword", d2))
	})
}

func TestArgon2id_Verify(t *testing.T) {
	h := NewArgon2id()

	t.Run("correct password verifies", func(t *testing.T) {
		digest, err := h.Hash("correctpassword")
		require.NoError(t, err)
		assert.True(t, h.Verify("correctpassword", digest))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		digest, err := h.Hash("correctpassword")
		require.NoError(t, err)
		assert.False(t, h.Verify("wrongpassword", digest))
	})

	t.Run("malformed digests fail without panicking", func(t *testing.T) {
		for _, digest := range []string{
			"",
			"plaintext",
			"$argon2id$",
			"$argon2id$v=19$m=65536,t=1,p=4$notbase64!!$notbase64!!",
			"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
			"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=65536,t=1,p=999$c2FsdA$aGFzaA",
		} {
			assert.False(t, h.Verify("password", digest), "digest %q", digest)
		}
	})
}
