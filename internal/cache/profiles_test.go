package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestProfileRoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	profiles := NewRedisProfiles(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, profiles.Ping(ctx))

	miss, err := profiles.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, miss)

	want := &models.Profile{
		Common:         models.Common{ID: "abc", FullName: "Alice", Role: models.RolePatient},
		PatientProfile: &models.PatientProfile{MedicalRecord: "MR-1"},
	}
	require.NoError(t, profiles.Set(ctx, "abc", want))
	assert.True(t, mr.Exists("profile:abc"))
	assert.Equal(t, time.Minute, mr.TTL("profile:abc"))

	got, err := profiles.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Nil(t, got.DoctorProfile)

	require.NoError(t, profiles.Delete(ctx, "abc"))
	assert.False(t, mr.Exists("profile:abc"))
}

func TestProfileExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	profiles := NewRedisProfiles(client, 0)
	ctx := context.Background()

	require.NoError(t, profiles.Set(ctx, "abc", &models.Profile{Common: models.Common{ID: "abc"}}))
	assert.Equal(t, defaultProfileTTL, mr.TTL("profile:abc"))

	mr.FastForward(defaultProfileTTL + time.Second)
	got, err := profiles.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetRejectsCorruptEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("profile:abc", "{not json"))

	_, err := NewRedisProfiles(client, time.Minute).Get(context.Background(), "abc")
	assert.Error(t, err)
}
