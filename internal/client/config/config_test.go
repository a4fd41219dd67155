package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.EndpointAddr)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "peerpoint.db", c.DBPath)
	assert.Equal(t, 3*time.Second, c.NoticeTTL)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.EndpointAddr)
	assert.Equal(t, "peerpoint.db", cfg.DBPath)
}
