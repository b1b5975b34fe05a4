package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "UTC+05:30", cfg.Timezone.Canonical)
	assert.Equal(t, "IST", cfg.Timezone.Label)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("BACKEND_BASE_URL", "https://lab.example.edu/api/v1/")
	v.Set("BACKEND_TIMEOUT", "garbage")
	v.Set("CACHE_TTL", "30s")
	v.Set("ENABLE_CACHE", true)
	v.Set("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	v.Set("CANONICAL_UTC_OFFSET", "UTC-04:00")
	cfg := fromViper(v)

	assert.Equal(t, "https://lab.example.edu/api/v1", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "UTC-04:00", cfg.Timezone.Canonical)
}
