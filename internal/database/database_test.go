package database

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig("postgres://u:p@localhost:5432/arena", 10, time.Minute, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.Equal(t, int32(DefaultMinConnections), cfg.MinConns)
	assert.Equal(t, time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
}

func TestPoolConfig_ClampsOversizedMax(t *testing.T) {
	cfg, err := poolConfig("postgres://u:p@localhost:5432/arena", math.MaxInt32+1, time.Minute, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), cfg.MaxConns)
}

func TestPoolConfig_BadConnString(t *testing.T) {
	_, err := poolConfig("://not-a-dsn", 5, time.Minute, time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}
