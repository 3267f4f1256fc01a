package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inEmptyDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 5*time.Minute, cfg.Lessons.CacheTTL)
	assert.False(t, cfg.Scheduler.RespectConfirmed)
	assert.True(t, cfg.Scheduler.WeekLock)
	assert.Equal(t, "Asia/Seoul", cfg.Scheduler.DefaultTimezone)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "lesson-board", cfg.Redis.Namespace)
}

func TestLoadReadsEnvironment(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("LESSON_CACHE_TTL", "not-a-duration")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("SCHEDULER_RESPECT_CONFIRMED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Lessons.CacheTTL)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)
	assert.True(t, cfg.Scheduler.RespectConfirmed)
}
