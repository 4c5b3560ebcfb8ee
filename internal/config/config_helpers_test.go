package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetEnvInt tests the getEnvInt helper function
func TestGetEnvInt(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		result, err := getEnvInt("TEST_INT_VAR", 42)
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("parses valid integer from env var", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "100")
		result, err := getEnvInt("TEST_INT_VAR", 42)
		require.NoError(t, err)
		assert.Equal(t, 100, result)
	})

	t.Run("returns error for invalid integer", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "not-a-number")
		_, err := getEnvInt("TEST_INT_VAR", 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid TEST_INT_VAR value")
	})

	t.Run("returns default for empty string", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "")
		result, err := getEnvInt("TEST_INT_VAR", 42)
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})
}

// TestGetEnvDuration tests the getEnvDuration helper function
func TestGetEnvDuration(t *testing.T) {
	t.Run("returns default value when env var not set", func(t *testing.T) {
		os.Unsetenv("TEST_DURATION_VAR")
		result, err := getEnvDuration("TEST_DURATION_VAR", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, result)
	})

	t.Run("parses go duration syntax", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "250ms")
		result, err := getEnvDuration("TEST_DURATION_VAR", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, result)
	})

	t.Run("returns error for bare numbers with units missing", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "15")
		_, err := getEnvDuration("TEST_DURATION_VAR", time.Minute)
		assert.Error(t, err)
	})
}

func TestParseEncryptionKey(t *testing.T) {
	key, err := parseEncryptionKey("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	key, err = parseEncryptionKey("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	assert.Equal(t, byte(0x1f), key[31])

	_, err = parseEncryptionKey("")
	assert.Error(t, err)

	_, err = parseEncryptionKey("short")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , "))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, splitList("10.0.0.1, 10.0.0.2,"))
}
