package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Database.Backend)
	assert.Equal(t, "hospital", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 10*time.Minute, cfg.Redis.ProfileTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.SMS.APIKey)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PROFILE_CACHE_TTL", "bogus")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, BackendMongo, cfg.Database.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Redis.ProfileTTL)
	assert.Equal(t, logrus.DebugLevel, cfg.Logger().GetLevel())
}

func TestValidate(t *testing.T) {
	cases := map[string]map[string]string{
		"no secret":     {"STORE_BACKEND": "memory", "JWT_SECRET": ""},
		"no mongo uri":  {"JWT_SECRET": "s", "STORE_BACKEND": "mongo"},
		"bad backend":   {"JWT_SECRET": "s", "STORE_BACKEND": "postgres"},
		"bad log level": {"JWT_SECRET": "s", "STORE_BACKEND": "memory", "LOG_LEVEL": "loud"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("MONGO_URI", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
