package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Options(t *testing.T) {
	t.Run("Should require a URL", func(t *testing.T) {
		_, err := Config{}.Options()
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("Should enable TLS for rediss", func(t *testing.T) {
		opts, err := Config{URL: "rediss://default:pw@cache.example.com"}.Options()
		require.NoError(t, err)
		assert.Equal(t, "cache.example.com:6379", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})

	t.Run("Should prefer explicit password", func(t *testing.T) {
		opts, err := Config{URL: "redis://:fromurl@localhost:6380", Password: "explicit"}.Options()
		require.NoError(t, err)
		assert.Equal(t, "localhost:6380", opts.Addr)
		assert.Equal(t, "explicit", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})
}
