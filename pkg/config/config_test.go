package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReturnsDefaultConfig(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "6379", cfg.Port)
	assert.Empty(t, cfg.ReplicaOf)
	assert.Equal(t, 100*time.Millisecond, cfg.SweepInterval)
	assert.Empty(t, cfg.HTTPAddr, "ops HTTP listener is disabled by default")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:6379", cfg.Addr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("RESPKV_PORT", "7000")
	t.Setenv("RESPKV_REPLICAOF", "localhost 6379")
	t.Setenv("RESPKV_SWEEP_INTERVAL", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "localhost 6379", cfg.ReplicaOf)
	assert.Equal(t, 250*time.Millisecond, cfg.SweepInterval)
}

func TestLoad_OptionsOverrideEnvironment(t *testing.T) {
	t.Setenv("RESPKV_PORT", "7000")

	cfg, err := Load(WithPort("7001"), WithHost("0.0.0.0"), WithHTTPAddr(":8080"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7001", cfg.Addr())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(WithPort("not-a-port"))
	assert.Error(t, err)

	_, err = Load(WithSweepInterval(0))
	assert.Error(t, err)

	t.Setenv("RESPKV_SWEEP_INTERVAL", "soon")
	_, err = Load()
	assert.Error(t, err)
}
