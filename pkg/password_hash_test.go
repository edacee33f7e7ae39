package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwordHash, err := HashPassword("testpass")
	require.NoError(t, err)
	require.NotEmpty(t, passwordHash)

	assert.True(t, CheckPasswordHash("testpass", passwordHash))
	assert.False(t, CheckPasswordHash("wrongpass", passwordHash))

	// a previously stored hash keeps matching
	storedHash := "$2a$14$6Gmhg85si2etd3K9oB8nYu1cxfbrdmhkg6wI6OXsa88IF4L2r/L9i"
	assert.True(t, CheckPasswordHash("testpass", storedHash))
	assert.False(t, CheckPasswordHash("testpass2", storedHash))
}
