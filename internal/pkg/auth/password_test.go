package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-password"))
}

func TestGenerateTempPassword(t *testing.T) {
	p1, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.Len(t, p1, 12)

	p2, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)

	for _, c := range p1 {
		assert.True(t, strings.ContainsRune(tempPasswordAlphabet, c), "unexpected character %q", c)
	}
}
