package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/gobrowse-events/events"
)

func TestDefaults(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Verify())

	lvl, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, lvl)

	p, err := c.Policy()
	require.NoError(t, err)
	assert.Equal(t, events.DuplicateError, p)
	assert.True(t, c.Script.Enable)
	assert.Equal(t, 128, c.Script.CacheSize)
	assert.False(t, c.Metrics.Enable)

	// NewConfig hands out copies.
	c.Script.CacheSize = 1
	assert.Equal(t, 128, NewConfig().Script.CacheSize)
}

func TestNewConfigWithFile(t *testing.T) {
	c, err := NewConfigWithFile("testdata/config.yml")
	require.NoError(t, err)
	require.NoError(t, c.Verify())

	assert.Equal(t, "testdata/config.yml", c.File)
	lvl, _ := c.Level()
	assert.Equal(t, logrus.WarnLevel, lvl)
	p, _ := c.Policy()
	assert.Equal(t, events.DuplicateIgnore, p)
	assert.Equal(t, 16, c.Script.CacheSize)
	assert.True(t, c.Metrics.Enable)

	_, err = NewConfigWithFile("testdata/missing.yml")
	assert.Error(t, err)
}

func TestPartialConfigKeepsDefaults(t *testing.T) {
	c, err := NewConfigWithBytes([]byte("debug: true\n"))
	require.NoError(t, err)
	require.NoError(t, c.Verify())

	lvl, _ := c.Level()
	assert.Equal(t, logrus.DebugLevel, lvl)
	assert.Equal(t, 128, c.Script.CacheSize)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad level", "log_level: loud\n"},
		{"bad policy", "duplicate_policy: replace\n"},
		{"zero cache", "script:\n  enable: true\n  cache_size: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewConfigWithBytes([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Error(t, c.Verify())
		})
	}

	var nilConfig *Config
	assert.Error(t, nilConfig.Verify())

	_, err := NewConfigWithBytes([]byte("script: [1, 2"))
	assert.Error(t, err)
}
