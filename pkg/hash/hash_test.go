package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	assert.NotEqual(t, "correct horse battery staple", h)

	assert.True(t, CheckPassword(h, "correct horse battery staple"))
	assert.False(t, CheckPassword(h, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "anything"))
}
