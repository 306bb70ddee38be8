package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)
	v := NewBcryptPasswordVerifier()

	first, err := h.Hash("secret123")
	require.NoError(t, err)
	second, err := h.Hash("secret123")
	require.NoError(t, err)

	// saltが違うので同じ入力でも別のハッシュ
	assert.NotEqual(t, first, second)
	assert.True(t, v.Verify("secret123", first))
	assert.True(t, v.Verify("secret123", second))
	assert.False(t, v.Verify("secret124", first))
}

func TestBcryptVerifyMalformedHash(t *testing.T) {
	v := NewBcryptPasswordVerifier()
	assert.False(t, v.Verify("secret123", "not-a-hash"))
	assert.False(t, v.Verify("secret123", ""))
}

func TestBcryptHashTooLong(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestNormalizeEmail(t *testing.T) {
	got, ok := normalizeEmail("  A@X.com ")
	assert.True(t, ok)
	assert.Equal(t, "a@x.com", got)

	for _, bad := range []string{"", "nope", "Name <a@x.com>"} {
		_, ok := normalizeEmail(bad)
		assert.False(t, ok, bad)
	}
}
