package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	_, err := Options(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = Options(Config{URL: "http://localhost"})
	assert.Error(t, err)

	opts, err := Options(Config{URL: "redis://:secret@localhost"})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Nil(t, opts.TLSConfig)

	opts, err = Options(Config{URL: "rediss://cache.example.com:6380", Password: "override"})
	require.NoError(t, err)
	assert.Equal(t, "cache.example.com:6380", opts.Addr)
	assert.Equal(t, "override", opts.Password)
	require.NotNil(t, opts.TLSConfig)
	assert.Equal(t, "cache.example.com", opts.TLSConfig.ServerName)
}
