package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	require.NotNil(t, cfg)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Second, cfg.Dashboard.ClockTick)
	assert.Equal(t, 2*time.Second, cfg.Dashboard.WFHApprovalDelay)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, "en", cfg.I18n.DefaultLocale)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SESSION_STORE", "REDIS")
	v.Set("WFH_APPROVAL_DELAY", "250ms")
	v.Set("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := fromViper(v)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 250*time.Millisecond, cfg.Dashboard.WFHApprovalDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestUnknownSessionStoreFallsBackToMemory(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SESSION_STORE", "etcd")

	assert.Equal(t, SessionStoreMemory, fromViper(v).Session.Store)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Minute))
}
