package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("19990302")
	require.NoError(t, err)
	assert.NotEqual(t, "19990302", hash)

	assert.True(t, CheckPassword(hash, "19990302"))
	assert.False(t, CheckPassword(hash, "19990303"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("secret")
	require.NoError(t, err)
	second, err := HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "secret"))
	assert.True(t, CheckPassword(second, "secret"))
}
