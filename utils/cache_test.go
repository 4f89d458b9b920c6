package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rideconnect/config"
)

func TestTaskQueueRedisOpt(t *testing.T) {
	config.AppConfig.RedisAddr = "redis:6379"
	config.AppConfig.RedisPassword = "pw"
	config.AppConfig.RedisTaskQueueDB = 3
	t.Cleanup(func() { config.AppConfig = config.Config{} })

	opt := TaskQueueRedisOpt()
	assert.Equal(t, "redis:6379", opt.Addr)
	assert.Equal(t, "pw", opt.Password)
	assert.Equal(t, 3, opt.DB)
}

func TestInitCache(t *testing.T) {
	t.Cleanup(func() {
		_ = CloseCache()
		CacheClient = nil
		config.AppConfig = config.Config{}
	})

	mr := miniredis.RunT(t)
	config.AppConfig.RedisAddr = mr.Addr()

	require.NoError(t, InitCache())
	require.NotNil(t, GetCacheClient())
	assert.NoError(t, GetCacheClient().Ping(context.Background()).Err())
}

func TestInitCache_Unreachable(t *testing.T) {
	t.Cleanup(func() {
		CacheClient = nil
		config.AppConfig = config.Config{}
	})

	mr := miniredis.RunT(t)
	config.AppConfig.RedisAddr = mr.Addr()
	mr.Close()

	assert.Error(t, InitCache())
	assert.Nil(t, GetCacheClient())
}
