package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestRandomCodeAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := RandomCode()
		require.NoError(t, err)
		assert.True(t, ValidCode(code), code)
	}
}

func TestGenerateUniqueCodeRetriesCollisions(t *testing.T) {
	codes := []string{"AAAAAA", "BBBBBB", "CCCCCC"}
	i := 0
	next := func() (string, error) {
		c := codes[i]
		i++
		return c, nil
	}
	taken := map[string]bool{"AAAAAA": true, "BBBBBB": true}

	code, err := GenerateUniqueCode(context.Background(), next, func(_ context.Context, c string) (bool, error) {
		return taken[c], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "CCCCCC", code)
}

func TestGenerateUniqueCodeExhausted(t *testing.T) {
	calls := 0
	_, err := GenerateUniqueCode(context.Background(), nil, func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})

	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindCodeExhausted))
	assert.Equal(t, MaxCodeAttempts, calls)
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("A1B2C3"))
	assert.False(t, ValidCode("a1b2c3"))
	assert.False(t, ValidCode("A1B2C"))
	assert.False(t, ValidCode("A1-2C3"))
}
